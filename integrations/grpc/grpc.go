// Package grpc carries outcome errors across gRPC.
//
// Business errors become statuses whose code follows the HTTP status the
// error maps to, with an errdetails.ErrorInfo detail holding the error
// code. Failures that escaped the outcome path are classified, logged and
// answered with a generic message, mirroring outcome.ExceptionHandler.
package grpc

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"
	"strconv"

	"github.com/blackwell-systems/outcome"
	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	grpcfw "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	// Domain is the ErrorInfo domain for outcome errors.
	Domain = "outcome"

	// MetadataTraceID is the metadata key for trace IDs.
	MetadataTraceID = "x-request-id"
)

// CodeForStatus maps an HTTP status produced by outcome to a gRPC code.
func CodeForStatus(httpStatus int) codes.Code {
	switch httpStatus {
	case http.StatusBadRequest:
		return codes.InvalidArgument
	case http.StatusUnauthorized:
		return codes.Unauthenticated
	case http.StatusForbidden:
		return codes.PermissionDenied
	case http.StatusNotFound:
		return codes.NotFound
	case http.StatusConflict:
		return codes.AlreadyExists
	case outcome.StatusClientClosedRequest:
		return codes.Canceled
	default:
		return codes.Internal
	}
}

// CodeForKind maps an escaped failure kind to a gRPC code.
func CodeForKind(kind outcome.Kind) codes.Code {
	switch kind {
	case outcome.KindPermission:
		return codes.PermissionDenied
	case outcome.KindInvalidState:
		return codes.FailedPrecondition
	case outcome.KindInvalidArgument:
		return codes.InvalidArgument
	case outcome.KindNotFound:
		return codes.NotFound
	case outcome.KindCancelled:
		return codes.Canceled
	default:
		return codes.Internal
	}
}

// Status converts a business error into a gRPC status.
func Status(e outcome.Error) *status.Status {
	httpStatus := outcome.StatusFor(e.Code)
	st := status.New(CodeForStatus(httpStatus), e.Description)
	with, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   e.Code,
		Domain:   Domain,
		Metadata: map[string]string{"status": strconv.Itoa(httpStatus)},
	})
	if err != nil {
		return st
	}
	return with
}

// FromError recovers the business error carried by a gRPC error.
func FromError(err error) (outcome.Error, bool) {
	st, ok := status.FromError(err)
	if !ok || st == nil {
		return outcome.None, false
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == Domain {
			return outcome.NewError(info.GetReason(), st.Message()), true
		}
	}
	return outcome.None, false
}

// Reply turns a value outcome into a handler return.
//
// Example:
//
//	func (s *server) GetDeal(ctx context.Context, req *pb.GetDealRequest) (*pb.Deal, error) {
//	    return grpc.Reply(outcome.Map(s.deals.Get(ctx, req.Id), toProto))
//	}
func Reply[T any](v outcome.Value[T]) (T, error) {
	if v.IsFailure() {
		var zero T
		return zero, Status(v.Error()).Err()
	}
	return v.Value(), nil
}

// UnaryServerInterceptor returns an interceptor that converts handler
// errors and panics into gRPC statuses. h supplies the logger, the
// classifiers and the development flag; nil means defaults.
func UnaryServerInterceptor(h *outcome.ExceptionHandler) grpcfw.UnaryServerInterceptor {
	if h == nil {
		h = &outcome.ExceptionHandler{}
	}
	logger := h.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(ctx context.Context, req any, info *grpcfw.UnaryServerInfo, handler grpcfw.UnaryHandler) (resp any, err error) {
		traceID := traceIDFromMetadata(ctx)
		ctx = outcome.WithTraceID(ctx, traceID)
		_ = grpcfw.SetHeader(ctx, metadata.Pairs(MetadataTraceID, traceID))

		defer func() {
			if v := recover(); v != nil {
				resp, err = nil, handle(logger, h, info.FullMethod, traceID, &outcome.PanicError{Value: v, Stack: debug.Stack()})
			}
		}()

		resp, err = handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		return nil, handle(logger, h, info.FullMethod, traceID, err)
	}
}

func handle(logger *zap.Logger, h *outcome.ExceptionHandler, method, traceID string, err error) error {
	var pe *outcome.PanicError
	if !errors.As(err, &pe) {
		if _, ok := status.FromError(err); ok {
			return err
		}
		var be outcome.Error
		if errors.As(err, &be) && !be.IsNone() {
			return Status(be).Err()
		}
	}

	kind := outcome.Classify(err, h.Classifiers...)
	code := CodeForKind(kind)
	if kind == outcome.KindCancelled && errors.Is(err, context.DeadlineExceeded) {
		code = codes.DeadlineExceeded
	}

	logger.Error("unhandled exception occurred",
		zap.String(outcome.ExtTraceID, traceID),
		zap.String("grpcCode", code.String()),
		zap.String("method", method),
		zap.Error(err),
	)

	msg := outcome.ProblemForKind(kind).Detail
	if h.Development {
		msg = err.Error()
	}
	return status.Error(code, msg)
}

func traceIDFromMetadata(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(MetadataTraceID); len(ids) > 0 && ids[0] != "" {
			return ids[0]
		}
	}
	if id := outcome.TraceIDFromContext(ctx); id != "" {
		return id
	}
	return outcome.NewTraceID()
}
