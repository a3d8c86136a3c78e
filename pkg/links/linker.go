package links

import (
	"fmt"

	kerrors "github.com/Ortofta/kaoto/pkg/errors"
	"github.com/Ortofta/kaoto/pkg/viz"
)

// Walker produces the ordered correlations of the current mapping tree.
type Walker interface {
	Correlations() ([]Correlation, error)
}

// WalkerFunc adapts a function to the Walker interface.
type WalkerFunc func() ([]Correlation, error)

// Correlations calls f.
func (f WalkerFunc) Correlations() ([]Correlation, error) { return f() }

// Static is a Walker over a fixed list.
type Static []Correlation

// Correlations returns s.
func (s Static) Correlations() ([]Correlation, error) { return s, nil }

// Linker recomputes connections on demand. Callers invoke Refresh whenever
// the trees or the set of visible nodes change (expand, collapse, resize,
// scroll). A Linker is not safe for concurrent use.
type Linker struct {
	Walker Walker
	Oracle Oracle
	// Graph is optional; see Extract.
	Graph *viz.Graph

	last Result
}

// Refresh runs a full extraction pass and stores the result.
func (l *Linker) Refresh() ([]Connection, error) {
	if l.Walker == nil {
		return nil, kerrors.MissingContext("mapping walker")
	}
	if l.Oracle == nil {
		return nil, kerrors.MissingContext("visibility oracle")
	}
	correlations, err := l.Walker.Correlations()
	if err != nil {
		return nil, fmt.Errorf("walk mappings: %w", err)
	}
	res, err := Resolve(l.Graph, correlations, l.Oracle)
	if err != nil {
		return nil, err
	}
	l.last = res
	return res.Connections, nil
}

// Links returns the connections of the last successful Refresh.
func (l *Linker) Links() []Connection { return l.last.Connections }

// Last returns the full result of the last successful Refresh.
func (l *Linker) Last() Result { return l.last }
