package forecaster

import (
	"fmt"
	"os"
	"strings"

	"github.com/aouyang1/go-trendcast/dataset"
	"github.com/aouyang1/go-trendcast/forecast"
	"github.com/aouyang1/go-trendcast/render"
)

func ExampleForecaster() {
	input := `Year,Anomaly
1950,-0.1
1951,0.0
1952,0.2
`
	ds, skipped, err := dataset.LoadCSVFromReader(strings.NewReader(input), nil)
	if err != nil {
		panic(err)
	}

	f, err := New(&Options{
		Range:    forecast.Range{Start: 2024, End: 2026},
		Baseline: "1951-1980",
	})
	if err != nil {
		panic(err)
	}
	if err := f.FitDataset(ds); err != nil {
		panic(err)
	}

	doc, err := f.Document(skipped)
	if err != nil {
		panic(err)
	}
	if err := render.WriteCSV(os.Stdout, doc, &render.Format{Precision: 4}); err != nil {
		panic(err)
	}
	fmt.Println(f.Line().Slope > 0)

	// Output:
	// Baseline Period: 1951-1980
	// Year,Anomaly
	// 1950,-0.1
	// 1951,0
	// 1952,0.2
	//
	// Year,Forecasted Anomaly
	// 2024,10.98
	// 2025,11.13
	// 2026,11.28
	// true
}
