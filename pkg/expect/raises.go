package expect

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"

	"digital.vasic.corespec/pkg/scenario"
)

// Kinded is implemented by errors that carry a named kind such
// as "ArgumentError" or "TypeError".
type Kinded interface {
	error
	Kind() string
}

// ErrorMatcher decides whether a raised error is of the awaited
// kind.
type ErrorMatcher interface {
	Match(err error) bool
	String() string
}

type kindMatcher string

func (k kindMatcher) Match(err error) bool {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if kd, ok := e.(Kinded); ok && kd.Kind() == string(k) {
			return true
		}
	}
	return false
}

func (k kindMatcher) String() string { return string(k) }

// ErrorKind matches errors whose chain contains an error with a
// Kind() method returning name.
func ErrorKind(name string) ErrorMatcher { return kindMatcher(name) }

type asMatcher[E error] struct{}

func (asMatcher[E]) Match(err error) bool {
	var target E
	return errors.As(err, &target)
}

func (asMatcher[E]) String() string {
	return reflect.TypeOf((*E)(nil)).Elem().String()
}

// As matches errors assignable to E anywhere in the chain.
func As[E error]() ErrorMatcher { return asMatcher[E]{} }

type isMatcher struct{ target error }

func (m isMatcher) Match(err error) bool {
	return errors.Is(err, m.target)
}

func (m isMatcher) String() string { return m.target.Error() }

// Is matches errors for which errors.Is(err, target) holds.
func Is(target error) ErrorMatcher { return isMatcher{target} }

type anyMatcher struct{}

func (anyMatcher) Match(err error) bool { return err != nil }
func (anyMatcher) String() string       { return "any error" }

// AnyError matches every raised error.
var AnyError ErrorMatcher = anyMatcher{}

// Literal quotes s so that it matches verbatim as a pattern.
func Literal(s string) string { return regexp.QuoteMeta(s) }

// Raises invokes action and passes only if it raises an error
// that matches kind and whose message matches the regular
// expression pattern. A panic counts as a raised error. The
// empty pattern matches any message.
func Raises(
	action func() error,
	kind ErrorMatcher,
	pattern string,
) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fail(KindRaises,
			"invalid message pattern /%s/: %v", pattern, err)
	}

	raised := capture(action)
	if raised == nil {
		return fail(KindRaises, "no error raised")
	}

	if kind == nil {
		kind = AnyError
	}
	if !kind.Match(raised) || !re.MatchString(raised.Error()) {
		return fail(KindRaises,
			"expected %s matching /%s/, got %s: %s",
			kind, pattern, KindName(raised), raised.Error())
	}
	return nil
}

// capture runs action and turns a panic into an error.
func capture(action func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &scenario.PanicError{Value: r}
		}
	}()
	return action()
}

// KindName returns the kind of err: the first Kind() found in
// the chain, otherwise its dynamic type.
func KindName(err error) string {
	var kinded Kinded
	if errors.As(err, &kinded) {
		return kinded.Kind()
	}
	return fmt.Sprintf("%T", err)
}
