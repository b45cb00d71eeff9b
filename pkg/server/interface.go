/*
Package server implements msgpack IPC for the similarity index.

The protocol is request/response over stdin/stdout. Clients send a
msgpack-encoded SimilarityRequest frame and receive one response frame
per request, in order. Each frame carries the request ID back so clients
can pipeline.

A query request:

	{"id": "req_001", "t": "cat", "n": 10}

The response carries matches ranked by descending similarity:

	{"id": "req_001", "m": [{"w": "cats", "s": 0.4271}, {"w": "bat", "s": 0.2370}], "c": 2, "t": 145}

Invalid requests produce an error frame instead:

	{"id": "req_001", "e": "missing 'term' parameter", "c": 400}

Timing is reported in microseconds. Validation (term present, length
caps, input filter) happens before the index is touched, so malformed
input never reaches the traversal.
*/
package server

// SimilarityRequest asks for the terms most similar to one query term.
type SimilarityRequest struct {
	ID    string `msgpack:"id"`
	Term  string `msgpack:"t"`
	Limit int    `msgpack:"n,omitempty"`
}

// SimilarityMatch is one ranked match in a response.
type SimilarityMatch struct {
	Term  string  `msgpack:"w"`
	Score float64 `msgpack:"s"`
}

// SimilarityResponse carries the ranked matches for one request.
type SimilarityResponse struct {
	ID        string            `msgpack:"id"`
	Matches   []SimilarityMatch `msgpack:"m"`
	Count     int               `msgpack:"c"`
	TimeTaken int64             `msgpack:"t"`
}

// RequestError holds basic error information for failed requests.
type RequestError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
