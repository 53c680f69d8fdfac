/*
Package errors implements coded errors for the whole application.

Each error kind is represented by a root Error instance created with Register
and a globally unique numeric code. All errors produced during runtime must
wrap one of the registered roots, so that a failure can be classified with
(*Error).Is without string comparison and reported to the caller with a
stable code.

Extensions register their own domain specific roots next to the generic ones
declared here.
*/
package errors
