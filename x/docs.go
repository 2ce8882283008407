/*
Package x contains helpers shared by the extensions.

Extensions implement the domain functionality (Handler, Initializer,
etc.) and are combined together by the application. The authentication
helpers of this package let handlers find out who signed a transaction
without depending on a particular signature scheme.
*/
package x
