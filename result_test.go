package outcome

import (
	"errors"
	"strconv"
	"testing"
)

var errTest = NewError("Test.Error", "Test error description")

func TestSuccess(t *testing.T) {
	res := Success()

	if !res.IsSuccess() || res.IsFailure() {
		t.Error("expected success")
	}
	if res.Error() != None {
		t.Errorf("expected None, got %+v", res.Error())
	}
	if res.Err() != nil {
		t.Errorf("expected nil Err, got %v", res.Err())
	}
}

func TestZeroResultIsSuccess(t *testing.T) {
	var res Result
	if !res.IsSuccess() {
		t.Error("zero Result should be a success")
	}
}

func TestFailure(t *testing.T) {
	res := Failure(errTest)

	if res.IsSuccess() || !res.IsFailure() {
		t.Error("expected failure")
	}
	if res.Error() != errTest {
		t.Errorf("expected %+v, got %+v", errTest, res.Error())
	}
	if !errors.Is(res.Err(), errTest) {
		t.Errorf("expected Err to match %v", errTest)
	}
}

func TestFailureWithNonePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected Failure(None) to panic")
		}
	}()
	Failure(None)
}

func TestFailWithNonePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected Fail(None) to panic")
		}
	}()
	Fail[int](None)
}

func TestErrorResultConversion(t *testing.T) {
	res := errTest.Result()
	if !res.IsFailure() || res.Error() != errTest {
		t.Errorf("expected failure with %v, got %+v", errTest, res)
	}
}

func TestCreate(t *testing.T) {
	if !Create(true, errTest).IsSuccess() {
		t.Error("Create(true) should succeed")
	}
	if res := Create(false, errTest); res.Error() != errTest {
		t.Errorf("Create(false) should fail with %v, got %v", errTest, res.Error())
	}
}

func TestOk(t *testing.T) {
	v := Ok("test value")

	if !v.IsSuccess() || v.IsFailure() {
		t.Error("expected success")
	}
	if v.Value() != "test value" {
		t.Errorf("expected 'test value', got %q", v.Value())
	}
	if v.Error() != None {
		t.Errorf("expected None, got %+v", v.Error())
	}
}

func TestOf(t *testing.T) {
	v := Of(42)
	if !v.IsSuccess() || v.Value() != 42 {
		t.Errorf("expected success with 42, got %+v", v)
	}
}

func TestFail(t *testing.T) {
	v := Fail[string](errTest)

	if v.IsSuccess() || !v.IsFailure() {
		t.Error("expected failure")
	}
	if v.Error() != errTest {
		t.Errorf("expected %+v, got %+v", errTest, v.Error())
	}
}

func TestValueOnFailurePanics(t *testing.T) {
	v := Fail[int](errTest)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected Value() on a failure to panic")
		}
		msg, ok := r.(string)
		if !ok || msg == "" {
			t.Errorf("expected panic message, got %v", r)
		}
	}()
	_ = v.Value()
}

func TestValueOrDefaults(t *testing.T) {
	failed := Fail[int](errTest)
	if failed.ValueOrZero() != 0 {
		t.Errorf("expected zero, got %d", failed.ValueOrZero())
	}
	if failed.ValueOr(7) != 7 {
		t.Errorf("expected 7, got %d", failed.ValueOr(7))
	}

	ok := Ok(3)
	if ok.ValueOr(7) != 3 || ok.ValueOrZero() != 3 {
		t.Error("expected the carried value on success")
	}
}

func TestGet(t *testing.T) {
	v, err := Ok(5).Get()
	if err != nil || v != 5 {
		t.Errorf("expected (5, nil), got (%d, %v)", v, err)
	}

	v, err = Fail[int](errTest).Get()
	if v != 0 {
		t.Errorf("expected zero value, got %d", v)
	}
	var be Error
	if !errors.As(err, &be) || be != errTest {
		t.Errorf("expected %v, got %v", errTest, err)
	}
}

func TestFromPtr(t *testing.T) {
	s := "x"
	if v := FromPtr(&s, errTest); v.Value() != "x" {
		t.Errorf("expected x, got %q", v.Value())
	}
	if v := FromPtr[string](nil, errTest); v.Error() != errTest {
		t.Errorf("expected %v, got %v", errTest, v.Error())
	}
	if v := OfPtr[string](nil); v.Error() != NullValue {
		t.Errorf("expected NullValue, got %v", v.Error())
	}
}

func TestValueResult(t *testing.T) {
	if !Ok(1).Result().IsSuccess() {
		t.Error("expected success")
	}
	if Fail[int](errTest).Result().Error() != errTest {
		t.Error("expected the error to survive Result()")
	}
}

func TestMap(t *testing.T) {
	v := Map(Ok(42), strconv.Itoa)
	if v.Value() != "42" {
		t.Errorf("expected \"42\", got %q", v.Value())
	}

	called := false
	f := Map(Fail[int](errTest), func(i int) string {
		called = true
		return ""
	})
	if called {
		t.Error("mapper should not run on failure")
	}
	if f.Error() != errTest {
		t.Errorf("expected %v, got %v", errTest, f.Error())
	}
}

func TestBind(t *testing.T) {
	half := func(i int) Value[int] {
		if i%2 != 0 {
			return Fail[int](NewError("Math.Odd", "odd"))
		}
		return Ok(i / 2)
	}

	if v := Bind(Ok(8), half); v.Value() != 4 {
		t.Errorf("expected 4, got %d", v.Value())
	}
	if v := Bind(Ok(3), half); v.Error().Code != "Math.Odd" {
		t.Errorf("expected Math.Odd, got %s", v.Error().Code)
	}
	if v := Bind(Fail[int](errTest), half); v.Error() != errTest {
		t.Errorf("expected the original error, got %v", v.Error())
	}
}

func TestCallbacks(t *testing.T) {
	var seen int
	var failed Error

	Ok(9).OnSuccess(func(i int) { seen = i }).OnFailure(func(e Error) { failed = e })
	if seen != 9 || failed != None {
		t.Errorf("expected OnSuccess only, got seen=%d failed=%v", seen, failed)
	}

	seen = 0
	Fail[int](errTest).OnSuccess(func(i int) { seen = i }).OnFailure(func(e Error) { failed = e })
	if seen != 0 || failed != errTest {
		t.Errorf("expected OnFailure only, got seen=%d failed=%v", seen, failed)
	}

	failed = None
	Failure(errTest).OnFailure(func(e Error) { failed = e })
	if failed != errTest {
		t.Errorf("expected %v, got %v", errTest, failed)
	}
}
