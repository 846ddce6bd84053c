package render

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strings"
)

// StreamMediaType is the content type Turbo-capable clients advertise to
// receive fragment updates instead of redirects.
const StreamMediaType = "text/vnd.turbo-stream.html"

// AcceptsStream reports whether the client asked for fragment updates.
func AcceptsStream(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), StreamMediaType)
}

// StreamAction is one targeted fragment instruction.
type StreamAction struct {
	Action  string
	Target  string
	Content template.HTML
}

func Append(target string, content template.HTML) StreamAction {
	return StreamAction{Action: "append", Target: target, Content: content}
}

func Replace(target string, content template.HTML) StreamAction {
	return StreamAction{Action: "replace", Target: target, Content: content}
}

func Remove(target string) StreamAction {
	return StreamAction{Action: "remove", Target: target}
}

// TaskDOMID is the element id the row partial gives each task, and the
// target replace/remove actions address.
func TaskDOMID(taskID uint) string {
	return fmt.Sprintf("task_%d", taskID)
}

// Stream writes one or more <turbo-stream> elements. Remove actions carry no
// template body.
func (rd *Renderer) Stream(w http.ResponseWriter, actions ...StreamAction) {
	var buf bytes.Buffer
	for _, a := range actions {
		if a.Content == "" {
			fmt.Fprintf(&buf, "<turbo-stream action=%q target=%q></turbo-stream>\n", a.Action, a.Target)
			continue
		}
		fmt.Fprintf(&buf, "<turbo-stream action=%q target=%q><template>%s</template></turbo-stream>\n",
			a.Action, a.Target, a.Content)
	}

	w.Header().Set("Content-Type", StreamMediaType+"; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
