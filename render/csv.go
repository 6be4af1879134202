package render

import (
	"bufio"
	"io"
	"strconv"
)

// WriteCSV writes the baseline line followed by the historical section, a blank line, and
// the forecast section:
//
//	Baseline Period: 1951-1980
//	Year,Anomaly
//	1950,-0.1
//
//	Year,Forecasted Anomaly
//	2024,0.93
//
// The baseline line is omitted when baseline is empty.
func WriteCSV(w io.Writer, doc *Document, f *Format) error {
	f, err := f.Validate()
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if doc.Baseline != "" {
		bw.WriteString("Baseline Period: ")
		bw.WriteString(doc.Baseline)
		bw.WriteString("\n")
	}

	bw.WriteString(HeaderHistorical)
	bw.WriteString("\n")
	for _, p := range doc.Historical {
		bw.WriteString(f.Float(p.Year))
		bw.WriteString(",")
		bw.WriteString(f.Float(p.Value))
		bw.WriteString("\n")
	}

	bw.WriteString("\n")
	bw.WriteString(HeaderForecast)
	bw.WriteString("\n")
	for _, p := range doc.Forecast {
		bw.WriteString(strconv.Itoa(int(p.Year)))
		bw.WriteString(",")
		bw.WriteString(f.Float(p.Value))
		bw.WriteString("\n")
	}

	return bw.Flush()
}
