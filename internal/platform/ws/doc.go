// Package ws serves 2048 over WebSocket.
//
// Every connection owns one Session, driven only by that connection's read
// goroutine. Messages are JSON objects with a "type" field:
//
//	client -> server  {"type":"move","direction":"left"}
//	                  {"type":"reset"}
//	                  {"type":"state"}
//	server -> client  {"type":"state","session_id":"...","changed":true,"game_over":false,"board":{...}}
//	                  {"type":"game_over","session_id":"...","game_over":true,"board":{...}}
//	                  {"type":"error","session_id":"...","error":"..."}
//
// A game_over message carries the final board and is sent before the state
// message that follows it, which shows the fresh board when auto reset is on.
// That state message still has game_over set; the flag clears with the next
// move or reset.
//
// The board size is chosen per connection with the variant query parameter,
// e.g. /ws?variant=2048_large.
package ws
