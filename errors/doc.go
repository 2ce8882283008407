/*
Package errors provides the coded errors returned by every handler.

Each root error carries an ABCI code that clients use to tell failures apart.
Root errors are created once with Register, at program start, and never
returned as they are. Wrap them where the failure is detected:

	return errors.Wrapf(errors.ErrUnauthorized, "stream %d", id)

The innermost Wrap attaches a stack trace, printed with "%+v". Use
ErrXyz.Is(err) to test an error chain, Append to return many validation
failures at once and Field to name the attribute a failure relates to.
x/stream registers its own codes on top of the ones declared here.
*/
package errors
