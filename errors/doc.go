/*
Package errors implements custom error interfaces for heirloom.

The idea is to reuse as many errors from this package as possible and define
custom package errors only when absolutely necessary. x/will registers
ErrAlreadyClaimed that way.

If you want to register a custom error - use Register(code, description).
For reusing errors - use Errxxx.New and Errxxx.Newf.
Code stands for ABCI error code, which allows to distinguish types of errors
on the client side and act accordingly.

Please ensure you create the custom error using ErrXyz.New("...") or
errors.Wrap(err, "...") at the point of creation to ensure we attach a
stacktrace. If you wrap multiple times, we only record the first wrap with the
stacktrace.

Once you have an error, you can use `fmt.Printf/Sprintf` to get more context
	%s is just the error message
	%+v is the full stack trace
*/
package errors
