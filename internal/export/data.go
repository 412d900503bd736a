package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
)

func WriteCSV(w io.Writer, s Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "pressure"}); err != nil {
		return err
	}
	for i := range s.Times {
		if i >= len(s.Pressures) {
			break
		}
		row := []string{
			strconv.FormatFloat(s.Times[i], 'f', 6, 64),
			strconv.FormatFloat(s.Pressures[i], 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteJSON(w io.Writer, s Series) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(s)
}
