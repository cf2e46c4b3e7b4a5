package metrics

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gcaeditor"

// Sample is one counter value read back from a registry.
type Sample struct {
	// Name is the metric name without the namespace, e.g. "requests_total".
	Name   string
	Labels []Label
	Value  float64
}

type Label struct {
	Name, Value string
}

// String renders the sample like the text exposition format:
// requests_total{op="get_abstract",outcome="ok"} 2
func (s Sample) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	if len(s.Labels) > 0 {
		b.WriteByte('{')
		for i, l := range s.Labels {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%s=%q", l.Name, l.Value)
		}
		b.WriteByte('}')
	}
	fmt.Fprintf(&b, " %g", s.Value)
	return b.String()
}

// Gather reads the editor counters from g. Families outside the editor
// namespace are skipped. The order is the registry's: by name, then labels.
func Gather(g prometheus.Gatherer) ([]Sample, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	var out []Sample
	for _, mf := range families {
		name, ok := strings.CutPrefix(mf.GetName(), namespace+"_")
		if !ok {
			continue
		}
		for _, m := range mf.GetMetric() {
			s := Sample{Name: name}
			for _, lp := range m.GetLabel() {
				s.Labels = append(s.Labels, Label{Name: lp.GetName(), Value: lp.GetValue()})
			}
			switch {
			case m.GetCounter() != nil:
				s.Value = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				s.Value = m.GetGauge().GetValue()
			default:
				continue
			}
			out = append(out, s)
		}
	}
	return out, nil
}
