package inspector

import (
	"time"

	layoutkit "github.com/grindlemire/go-layoutkit"
)

// Frame is a JSON-friendly rectangle.
type Frame struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func frameOf(r layoutkit.Rect) Frame {
	return Frame{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// TreeNode is one node of an applied arrangement. Frames are relative to the
// parent node.
type TreeNode struct {
	ReuseID   string      `json:"reuse_id,omitempty"`
	ViewType  string      `json:"view_type,omitempty"`
	NeedsView bool        `json:"needs_view"`
	Frame     Frame       `json:"frame"`
	Children  []*TreeNode `json:"children,omitempty"`
}

// Snapshot converts an arrangement for display.
func Snapshot(arr *layoutkit.Arrangement) *TreeNode {
	if arr == nil {
		return nil
	}
	n := &TreeNode{Frame: frameOf(arr.Frame)}
	if l := arr.Layout; l != nil {
		n.ReuseID = l.ViewReuseID()
		n.NeedsView = l.NeedsView()
		if n.NeedsView {
			n.ViewType = l.ViewType()
		}
	}
	for i := range arr.Sublayouts {
		n.Children = append(n.Children, Snapshot(&arr.Sublayouts[i]))
	}
	return n
}

// Event is a pass event as served by the inspector.
type Event struct {
	PassID     string    `json:"pass_id"`
	Generation uint64    `json:"generation"`
	Stage      string    `json:"stage"`
	Time       time.Time `json:"time"`
	Nodes      int       `json:"nodes,omitempty"`
	Outcome    string    `json:"outcome,omitempty"`
	Built      int       `json:"built,omitempty"`
	Reused     int       `json:"reused,omitempty"`
	TornDown   int       `json:"torn_down,omitempty"`
	Errors     []string  `json:"errors,omitempty"`
}

func eventOf(e layoutkit.PassEvent) Event {
	out := Event{
		PassID:     e.PassID.String(),
		Generation: e.Generation,
		Stage:      string(e.Stage),
		Time:       e.Time,
	}
	if e.Arrangement != nil {
		out.Nodes = e.Arrangement.Count()
	}
	if r := e.Result; r != nil {
		out.Outcome = r.Outcome.String()
		out.Built = r.Report.Built
		out.Reused = r.Report.Reused
		out.TornDown = r.Report.TornDown
		for _, ne := range r.Report.Errors {
			out.Errors = append(out.Errors, ne.Error())
		}
		if r.Err != nil {
			out.Errors = append(out.Errors, r.Err.Error())
		}
	}
	return out
}
