package monitor

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/rangesim/internal/agent"
	"github.com/banshee-data/rangesim/internal/httputil"
)

// handleCloudChart renders the latest point cloud, ray endpoints and agent
// position as an HTML scatter chart. The y axis is inverted so the chart
// matches image coordinates.
func (ws *WebServer) handleCloudChart(w http.ResponseWriter, r *http.Request) {
	st, ok := ws.snapshots.Latest()
	if !ok {
		httputil.NotFound(w, "no scan published yet")
		return
	}
	snap := st.Snapshot

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "rangesim point cloud", Theme: "dark", Width: "900px", Height: "800px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Point Cloud",
			Subtitle: fmt.Sprintf("tick=%d hits=%d rays=%d", st.Tick, len(snap.Points), len(snap.Rays)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "X (px)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Y (px)", NameLocation: "middle", NameGap: 35, Inverse: opts.Bool(true)}),
	)

	scatter.AddSeries("hits", cloudData(snap.Points), charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}))
	scatter.AddSeries("ray ends", cloudData(snap.Rays), charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 2}))
	scatter.AddSeries("agent", []opts.ScatterData{{Value: []interface{}{snap.Position.X, snap.Position.Y}}},
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: int(2 * snap.Radius)}))

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func cloudData(entries []agent.CloudEntry) []opts.ScatterData {
	data := make([]opts.ScatterData, 0, len(entries))
	for _, e := range entries {
		data = append(data, opts.ScatterData{Value: []interface{}{e.Point.X, e.Point.Y}})
	}
	return data
}
