package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// fundamental carries a message and the stack captured at construction.
type fundamental struct {
	msg   string
	stack *stack
}

func (f *fundamental) Error() string { return f.msg }

type wrapped struct {
	cause error
	msg   string
	stack *stack
}

func (w *wrapped) Error() string {
	if w.msg == "" {
		return w.cause.Error()
	}
	return w.msg + ":" + w.cause.Error()
}

func (w *wrapped) Unwrap() error { return w.cause }

func New(msg string) error {
	return &fundamental{msg: msg, stack: callers()}
}

func Errorf(format string, args ...interface{}) error {
	return &fundamental{msg: fmt.Sprintf(format, args...), stack: callers()}
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &wrapped{cause: err, msg: msg, stack: callers()}
}

func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &wrapped{cause: err, msg: fmt.Sprintf(format, args...), stack: callers()}
}

func WithStack(err error) error {
	if err == nil {
		return nil
	}
	return &wrapped{cause: err, msg: "", stack: callers()}
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// ErrorfAndReport builds the error and pushes it to the configured reporters.
func ErrorfAndReport(format string, args ...interface{}) error {
	err := Errorf(format, args...)
	report(err)
	return err
}

func WrapAndReport(err error, msg string) error {
	wrap := Wrap(err, msg)
	report(wrap)
	return wrap
}

func WrapfAndReport(err error, format string, args ...interface{}) error {
	wrap := Wrapf(err, format, args...)
	report(wrap)
	return wrap
}

type stack []uintptr

func callers() *stack {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	var st stack = pcs[0:n]
	return &st
}

// fullStack renders frames as "file:line funcName", trimming the module prefix.
func (s *stack) fullStack() []string {
	lines := make([]string, 0, len(*s))
	frames := runtime.CallersFrames(*s)
	for {
		frame, more := frames.Next()
		var sb strings.Builder
		sb.WriteString(frame.File)
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(frame.Line))
		sb.WriteString(" ")
		sb.WriteString(frame.Function)
		lines = append(lines, sb.String())
		if !more {
			break
		}
	}
	return lines
}
