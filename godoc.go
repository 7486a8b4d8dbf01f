/*
Package sockrelay is an implementation of a real-time relay which routes
point-to-point chat messages, presence, and call signaling between WebSocket
clients identified by a stable user id.

wsd subdirectory contains the WebSocket pieces which know nothing about
routing.

event subdirectory contains the wire contract shared by both sides.

The Host type is the glue between the wsd and routing pieces.
*/
package sockrelay
