package runner

import (
	"encoding/json"
	"io"
	"os"
	"sync"

	"github.com/hashpad/turing/pkg/domain"
)

// JSONObserver writes every snapshot as one JSON line, for piping runs into other tools.
type JSONObserver struct {
	mu      sync.Mutex
	encoder *json.Encoder
	err     error
}

// NewJSONObserver creates an observer writing to w (Stdout if nil).
func NewJSONObserver(w io.Writer) *JSONObserver {
	if w == nil {
		w = os.Stdout
	}
	return &JSONObserver{encoder: json.NewEncoder(w)}
}

// Render implements domain.Observer.
func (o *JSONObserver) Render(snap domain.Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return
	}
	o.err = o.encoder.Encode(snap)
}

// Err returns the first write error.
func (o *JSONObserver) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}
