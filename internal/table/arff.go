package table

//
// arff.go - parsing the ARFF files emitted by the audio feature
// extractor: a list of @attribute declarations naming the features,
// then a @data section whose last line carries the feature values.
//

import (
	"bufio"
	"errors"
	"strings"

	"github.com/mhealthx/extract-cli/internal/fsx"
)

// ErrNoARFFData means that the ARFF file contains no data line.
var ErrNoARFFData = errors.New("table: no data line in ARFF file")

// ParseARFF reads an ARFF file and returns its last data line as a
// [*Row] whose header comes from the @attribute declarations.
func ParseARFF(path string) (*Row, error) {
	filep, err := fsx.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer filep.Close()

	header := []string{}
	lastData := ""
	inData := false
	scanner := bufio.NewScanner(filep)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<20) // feature lines are long
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			// skip blank lines
		case strings.HasPrefix(strings.ToLower(line), "@attribute"):
			fields := strings.Fields(line)
			if len(fields) >= 2 {
				header = append(header, fields[1])
			}
		case strings.HasPrefix(strings.ToLower(line), "@data"):
			inData = true
		case strings.HasPrefix(line, "@"):
			// skip other declarations (e.g., @relation)
		case inData:
			lastData = line
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if lastData == "" {
		return nil, ErrNoARFFData
	}

	values := strings.Split(lastData, ",")
	for idx, value := range values {
		values[idx] = strings.Trim(value, "'")
	}
	return NewRow(header, values)
}
