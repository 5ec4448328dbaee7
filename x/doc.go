/*
Package x contains the helpers shared by extensions: the Authenticator
contract used by handlers to learn who signed the current transaction.
*/
package x
