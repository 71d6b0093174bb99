package server

import "net/http"

// statusRecorder captures the status code and body size a handler writes so
// the logging and metrics middleware can report them. It also swallows
// duplicate WriteHeader calls, which keeps a handler bug from escalating
// into an http warning mid-response.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func record(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.wroteHeader {
		return
	}
	r.status = status
	r.wroteHeader = true
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// Status returns the status code sent to the client, defaulting to 200 when
// the handler never called WriteHeader explicitly.
func (r *statusRecorder) Status() int {
	return r.status
}
