/*
Package domain contains the core domain models for transition-tool invocation.

It defines the fundamental entities of the protocol boundary: the Request
handed to an external transition tool, the output Envelope it must produce,
the Transition pair returned to the caller, and the error taxonomy for the
ways an invocation can fail. This package is kept pure and free of process
or filesystem concerns; executing a tool is the responsibility of the root
package and its internal adapters.
*/
package domain
