package pipelines

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mhealthx/extract-cli/cmd/mhealthx/internal/database"
	"github.com/mhealthx/extract-cli/internal/featx/audio"
	"github.com/mhealthx/extract-cli/internal/model"
	"github.com/mhealthx/extract-cli/internal/model/mocks"
	"github.com/mhealthx/extract-cli/internal/shellx/shellxtesting"
	"github.com/mhealthx/extract-cli/internal/synapse"
	"github.com/mhealthx/extract-cli/internal/table"
)

// fakeService emulates the subset of the remote service the
// pipelines call.
type fakeService struct {
	mux           *http.ServeMux
	queryResponse *model.SynapseQueryResponse
	fileContent   map[string]string
	uploads       map[string]string
	nextHandleID  int
	createdTables []*model.SynapseTableSchema
	appendedRows  []*model.SynapseRowSet
}

func newFakeService(server *func() string) *fakeService {
	svc := &fakeService{
		mux:         http.NewServeMux(),
		fileContent: map[string]string{},
		uploads:     map[string]string{},
	}
	svc.mux.HandleFunc("/entity/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/table/query"):
			json.NewEncoder(w).Encode(svc.queryResponse)
		case strings.HasSuffix(r.URL.Path, "/table/append"):
			rowset := &model.SynapseRowSet{}
			data, _ := io.ReadAll(r.Body)
			json.Unmarshal(data, rowset)
			svc.appendedRows = append(svc.appendedRows, rowset)
			json.NewEncoder(w).Encode(rowset)
		default:
			w.WriteHeader(404)
		}
	})
	svc.mux.HandleFunc("/fileHandle/", func(w http.ResponseWriter, r *http.Request) {
		handleID := strings.TrimPrefix(r.URL.Path, "/fileHandle/")
		handleID = strings.TrimSuffix(handleID, "/url")
		if _, found := svc.fileContent[handleID]; !found {
			w.WriteHeader(404)
			return
		}
		resolved := &model.SynapseFileHandleURL{
			URL: (*server)() + "/content/" + handleID,
		}
		json.NewEncoder(w).Encode(resolved)
	})
	svc.mux.HandleFunc("/content/", func(w http.ResponseWriter, r *http.Request) {
		handleID := strings.TrimPrefix(r.URL.Path, "/content/")
		content, found := svc.fileContent[handleID]
		if !found {
			w.WriteHeader(404)
			return
		}
		w.Write([]byte(content))
	})
	svc.mux.HandleFunc("/fileHandle", func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		svc.nextHandleID++
		fileName := r.URL.Query().Get("fileName")
		svc.uploads[fileName] = string(data)
		handle := &model.SynapseFileHandle{
			ID:       fmt.Sprintf("fh-up-%d", svc.nextHandleID),
			FileName: fileName,
		}
		json.NewEncoder(w).Encode(handle)
	})
	svc.mux.HandleFunc("/table", func(w http.ResponseWriter, r *http.Request) {
		schema := &model.SynapseTableSchema{}
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, schema)
		schema.ID = fmt.Sprintf("syn%d", 9000+len(svc.createdTables))
		svc.createdTables = append(svc.createdTables, schema)
		json.NewEncoder(w).Encode(schema)
	})
	return svc
}

// newTestController creates a controller talking to a fake service
// and writing into a temporary directory.
func newTestController(t *testing.T) (*Controller, *fakeService) {
	var serverURL func() string
	svc := newFakeService(&serverURL)
	server := httptest.NewServer(svc.mux)
	t.Cleanup(server.Close)
	serverURL = func() string { return server.URL }

	tmpdir := t.TempDir()
	db, err := database.Connect(filepath.Join(tmpdir, "runs.sqlite3"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	ctl := &Controller{
		Client: &synapse.Client{
			BaseURL:    server.URL,
			HTTPClient: http.DefaultClient,
			Logger:     model.DiscardLogger,
			Token:      "fake-token",
			UserAgent:  "mhealthx-cli/test",
		},
		DB:        db,
		Logger:    model.DiscardLogger,
		CacheDir:  filepath.Join(tmpdir, "cache"),
		TableStem: filepath.Join(tmpdir, "features"),
		ProjectID: "syn12345",
	}
	if err := os.MkdirAll(ctl.CacheDir, 0700); err != nil {
		t.Fatal(err)
	}
	return ctl, svc
}

func phonationQueryResponse() *model.SynapseQueryResponse {
	return &model.SynapseQueryResponse{
		TableID: "syn4590865",
		Headers: []model.SynapseColumn{
			{ID: "1", Name: "recordId", ColumnType: "STRING"},
			{ID: "2", Name: "healthCode", ColumnType: "STRING"},
			{ID: "3", Name: "audio_audio.m4a", ColumnType: "FILEHANDLEID"},
		},
		Rows: []model.SynapseRow{
			{RowID: 0, VersionNumber: 0, Values: []string{"r-0", "h-0", "fh-100"}},
			{RowID: 1, VersionNumber: 0, Values: []string{"r-1", "h-1", ""}},
			{RowID: 2, VersionNumber: 0, Values: []string{"r-2", "h-2", "fh-102"}},
		},
	}
}

// newPhonationLibrary mocks the converter and the extractor commands:
// the converter creates the wav file and the extractor writes a
// semicolon-separated feature file.
func newPhonationLibrary(t *testing.T) *shellxtesting.Library {
	return &shellxtesting.Library{
		MockCmdRun: func(c *exec.Cmd) error {
			argv := shellxtesting.MustArgv(c)
			switch filepath.Base(argv[0]) {
			case "ffmpeg":
				return os.WriteFile(argv[len(argv)-1], []byte("fake wav"), 0600)
			case "SMILExtract":
				// the output path follows the -csvoutput flag
				outputFile := ""
				for idx, arg := range argv {
					if arg == "-csvoutput" && idx+1 < len(argv) {
						outputFile = argv[idx+1]
					}
				}
				content := "F0_amean;jitterLocal\n0.17;0.31\n"
				return os.WriteFile(outputFile, []byte(content), 0600)
			default:
				t.Fatal("unexpected command", argv[0])
				return nil
			}
		},
		MockLookPath: func(file string) (string, error) {
			return "/usr/bin/" + file, nil
		},
	}
}

func newPhonationPipeline() *Phonation {
	return &Phonation{
		Converter: &audio.Converter{
			Command:    "ffmpeg",
			InputArgs:  []string{"-y", "-i"},
			OutputArgs: []string{"-ac", "2"},
			AppendExt:  ".wav",
			Logger:     model.DiscardLogger,
		},
		OpenSMILE: &audio.OpenSMILE{
			Command:    "SMILExtract",
			InputFlag:  "-I",
			ConfigArgs: []string{"-C", "IS13_ComParE.conf"},
			OutputFlag: "-csvoutput",
			Closing:    []string{"-nologfile", "1"},
			Format:     audio.FormatCSV,
			Logger:     model.DiscardLogger,
		},
	}
}

func TestPhonationPipeline(t *testing.T) {
	t.Run("appending to the shared feature table", func(t *testing.T) {
		ctl, svc := newTestController(t)
		svc.queryResponse = phonationQueryResponse()
		svc.fileContent["fh-100"] = "audio zero"
		svc.fileContent["fh-102"] = "audio two"

		var (
			result *Result
			err    error
		)
		shellxtesting.WithCustomLibrary(newPhonationLibrary(t), func() {
			result, err = ctl.Run(context.Background(), newPhonationPipeline(),
				"syn4590865", "audio_audio.m4a", 0)
		})
		if err != nil {
			t.Fatal(err)
		}
		if result.Done != 2 {
			t.Fatal("unexpected done count", result.Done)
		}
		// the row without an attached file fails and yields a null row
		if result.Failed != 1 {
			t.Fatal("unexpected failed count", result.Failed)
		}

		tbl, err := table.ReadCSV(ctl.TableStem+".csv", ',')
		if err != nil {
			t.Fatal(err)
		}
		expectHeader := []string{
			"recordId", "healthCode", "audio_audio.m4a",
			"F0_amean", "jitterLocal",
		}
		if diff := cmp.Diff(expectHeader, tbl.Header); diff != "" {
			t.Fatal(diff)
		}
		if len(tbl.Rows) != 3 {
			t.Fatal("unexpected number of rows", len(tbl.Rows))
		}
		// metadata comes first, unaltered
		if diff := cmp.Diff([]string{"r-0", "h-0", "fh-100", "0.17", "0.31"}, tbl.Rows[0]); diff != "" {
			t.Fatal(diff)
		}

		runs, err := database.ListRuns(ctl.DB)
		if err != nil {
			t.Fatal(err)
		}
		if len(runs) != 3 {
			t.Fatal("unexpected number of ledger entries", len(runs))
		}
		byState := make(map[string]int)
		for _, run := range runs {
			byState[run.State]++
		}
		if byState[database.StateDone] != 2 || byState[database.StateFailed] != 1 {
			t.Fatal("unexpected ledger states", byState)
		}
	})

	t.Run("saving per-row files and uploading them", func(t *testing.T) {
		ctl, svc := newTestController(t)
		ctl.SaveRows = true
		ctl.Upload = true
		svc.queryResponse = phonationQueryResponse()
		svc.fileContent["fh-100"] = "audio zero"
		svc.fileContent["fh-102"] = "audio two"

		var (
			result *Result
			err    error
		)
		shellxtesting.WithCustomLibrary(newPhonationLibrary(t), func() {
			result, err = ctl.Run(context.Background(), newPhonationPipeline(),
				"syn4590865", "audio_audio.m4a", 0)
		})
		if err != nil {
			t.Fatal(err)
		}
		// one file per row, including the null row
		if len(result.Tables) != 3 {
			t.Fatal("unexpected number of feature files", len(result.Tables))
		}
		for _, path := range result.Tables {
			if _, err := os.Stat(path); err != nil {
				t.Fatal(err)
			}
		}
		// rows with a file are named after the download, rows
		// without one after their index
		expectNames := []string{
			ctl.TableStem + "_fh-100_audio_audio.m4a.csv",
			ctl.TableStem + "_row_1.csv",
			ctl.TableStem + "_fh-102_audio_audio.m4a.csv",
		}
		if diff := cmp.Diff(expectNames, result.Tables); diff != "" {
			t.Fatal(diff)
		}
		if result.UploadedTableID == "" {
			t.Fatal("expected an uploaded table ID")
		}
		if len(svc.uploads) != 3 {
			t.Fatal("unexpected number of uploads", len(svc.uploads))
		}
		if len(svc.createdTables) != 1 {
			t.Fatal("unexpected number of created tables", len(svc.createdTables))
		}
	})

	t.Run("when the extractor always fails", func(t *testing.T) {
		ctl, svc := newTestController(t)
		svc.queryResponse = phonationQueryResponse()
		svc.fileContent["fh-100"] = "audio zero"
		svc.fileContent["fh-102"] = "audio two"

		library := &shellxtesting.Library{
			MockCmdRun: func(c *exec.Cmd) error {
				return fmt.Errorf("exit status 1")
			},
			MockLookPath: func(file string) (string, error) {
				return "/usr/bin/" + file, nil
			},
		}
		var (
			result *Result
			err    error
		)
		shellxtesting.WithCustomLibrary(library, func() {
			result, err = ctl.Run(context.Background(), newPhonationPipeline(),
				"syn4590865", "audio_audio.m4a", 0)
		})
		if err != nil {
			t.Fatal(err)
		}
		if result.Done != 0 || result.Failed != 3 {
			t.Fatal("unexpected counts", result.Done, result.Failed)
		}
	})
}

const walkingAccelJSON = `[
  {"timestamp": 0.0, "x": 0.01, "y": -0.98, "z": 0.05},
  {"timestamp": 0.1, "x": 0.02, "y": -1.02, "z": 0.04},
  {"timestamp": 0.2, "x": 0.00, "y": -0.95, "z": 0.06},
  {"timestamp": 0.3, "x": 0.03, "y": -1.01, "z": 0.05},
  {"timestamp": 0.4, "x": 0.01, "y": -0.99, "z": 0.03}
]`

func walkingQueryResponse() *model.SynapseQueryResponse {
	return &model.SynapseQueryResponse{
		TableID: "syn4590866",
		Headers: []model.SynapseColumn{
			{ID: "1", Name: "recordId", ColumnType: "STRING"},
			{ID: "2", Name: "accel_walking_outbound.json.items", ColumnType: "FILEHANDLEID"},
		},
		Rows: []model.SynapseRow{
			{RowID: 0, VersionNumber: 0, Values: []string{"r-0", "fh-200"}},
			{RowID: 1, VersionNumber: 0, Values: []string{"r-1", "fh-201"}},
		},
	}
}

func TestWalkingPipeline(t *testing.T) {
	ctl, svc := newTestController(t)
	svc.queryResponse = walkingQueryResponse()
	svc.fileContent["fh-200"] = walkingAccelJSON
	svc.fileContent["fh-201"] = walkingAccelJSON

	extractor := &mocks.GaitExtractor{
		MockExtract: func(ctx context.Context, series *model.GaitSeries,
			params *model.GaitParams) (*model.GaitFeatures, error) {
			if len(series.Data) != 5 {
				t.Fatal("unexpected series length", len(series.Data))
			}
			return &model.GaitFeatures{NumberOfSteps: 8, Cadence: 96, RMS: 1.1}, nil
		},
	}
	pipe := &Walking{Extractor: extractor}

	result, err := ctl.Run(context.Background(), pipe,
		"syn4590866", "accel_walking_outbound.json.items", 0)
	if err != nil {
		t.Fatal(err)
	}
	if result.Done != 2 || result.Failed != 0 {
		t.Fatal("unexpected counts", result.Done, result.Failed)
	}

	tbl, err := table.ReadCSV(ctl.TableStem+".csv", ',')
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Header[0] != "recordId" {
		t.Fatal("unexpected first column", tbl.Header[0])
	}
	if tbl.Header[2] != "number_of_steps" {
		t.Fatal("unexpected first feature column", tbl.Header[2])
	}
	if tbl.Rows[0][2] != "8" {
		t.Fatal("unexpected number of steps", tbl.Rows[0][2])
	}
}
