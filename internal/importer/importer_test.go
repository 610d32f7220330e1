package importer

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/camaragestao/gestao/internal/api"
)

func TestPreflight_Assets(t *testing.T) {
	csv := strings.Join([]string{
		"Hostname,Type,Serial,AssetTag,Location,Status",
		"pc-01,Computador,SN1,PAT1,TI,Em Uso",
		"pc-02,Computador,SN2",
		"imp-01,Impressora,SN3,PAT3,Recepção,Estoque",
	}, "\n")

	report, err := Preflight(KindAssets, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Preflight failed: %v", err)
	}
	if report.Rows != 3 {
		t.Errorf("Expected 3 data rows, got %d", report.Rows)
	}
	if report.Malformed != 1 {
		t.Errorf("Expected 1 malformed row, got %d", report.Malformed)
	}
}

func TestPreflight_Users(t *testing.T) {
	csv := strings.Join([]string{
		"Username,Password,Role",
		"joao,senha123,User",
		"so-um-campo",
		"ana,outra456,Tech",
	}, "\n")

	report, err := Preflight(KindUsers, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Preflight failed: %v", err)
	}
	if report.Rows != 3 || report.Malformed != 1 {
		t.Errorf("Expected 3 rows with 1 malformed, got %+v", report)
	}
}

func TestPreflight_HeaderOnlyIsEmpty(t *testing.T) {
	_, err := Preflight(KindUsers, strings.NewReader("Username,Password,Role\n"))
	if !errors.Is(err, ErrEmptyFile) {
		t.Errorf("Expected ErrEmptyFile, got %v", err)
	}
}

func TestPreflight_UnknownKind(t *testing.T) {
	if _, err := Preflight(Kind("tickets"), strings.NewReader("a,b\n1,2\n")); err == nil {
		t.Error("Unknown kind should be rejected")
	}
}

// fakeUploader records uploads and returns a canned result.
type fakeUploader struct {
	assetCalls int
	userCalls  int
	filename   string
	body       string
	result     *api.ImportResult
	err        error
}

func (f *fakeUploader) record(filename string, file io.Reader) (*api.ImportResult, error) {
	f.filename = filename
	data, _ := io.ReadAll(file)
	f.body = string(data)
	return f.result, f.err
}

func (f *fakeUploader) ImportAssets(_ context.Context, filename string, file io.Reader) (*api.ImportResult, error) {
	f.assetCalls++
	return f.record(filename, file)
}

func (f *fakeUploader) ImportUsers(_ context.Context, filename string, file io.Reader) (*api.ImportResult, error) {
	f.userCalls++
	return f.record(filename, file)
}

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestRun_UploadsWholeFile(t *testing.T) {
	csv := "Hostname,Type,Serial,AssetTag,Location,Status\npc-01,Computador,SN1,PAT1,TI,Em Uso\n"
	path := writeCSV(t, "ativos.csv", csv)

	uploader := &fakeUploader{result: &api.ImportResult{Success: 1, Errors: 0}}
	imp := New(uploader, nil)

	result, report, err := imp.Run(context.Background(), KindAssets, path)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if uploader.assetCalls != 1 || uploader.userCalls != 0 {
		t.Errorf("Expected one asset upload, got assets=%d users=%d",
			uploader.assetCalls, uploader.userCalls)
	}
	if uploader.filename != "ativos.csv" {
		t.Errorf("Expected filename ativos.csv, got %q", uploader.filename)
	}
	if uploader.body != csv {
		t.Error("The upload must carry the file unchanged, malformed rows included")
	}
	if result.Success != 1 || report.Rows != 1 {
		t.Errorf("Unexpected result %+v / report %+v", result, report)
	}
}

// TestRun_PartialSuccess checks the continue-on-error contract: N rows with
// M bad ones yield success N-M and errors M, in one run.
func TestRun_PartialSuccess(t *testing.T) {
	csv := strings.Join([]string{
		"Username,Password,Role",
		"joao,senha123,User",
		"quebrado",
		"ana,outra456,Tech",
		"rui,abc,User",
	}, "\n")
	path := writeCSV(t, "usuarios.csv", csv)

	uploader := &fakeUploader{result: &api.ImportResult{Success: 3, Errors: 1}}
	imp := New(uploader, nil)

	result, report, err := imp.Run(context.Background(), KindUsers, path)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Rows != 4 || report.Malformed != 1 {
		t.Errorf("Preflight should predict the skip: %+v", report)
	}
	if result.Success != 3 || result.Errors != 1 {
		t.Errorf("Expected success=3 errors=1, got %+v", result)
	}
}

func TestRun_EmptyFileNeverUploads(t *testing.T) {
	path := writeCSV(t, "vazio.csv", "Username,Password,Role\n")
	uploader := &fakeUploader{result: &api.ImportResult{}}
	imp := New(uploader, nil)

	_, _, err := imp.Run(context.Background(), KindUsers, path)
	if !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("Expected ErrEmptyFile, got %v", err)
	}
	if uploader.userCalls != 0 {
		t.Error("Empty file must not be uploaded")
	}
}

func TestRun_UploadFailureKeepsReport(t *testing.T) {
	path := writeCSV(t, "ativos.csv", "h,t,s,a,l,st\npc,PC,1,2,3,4\n")
	uploader := &fakeUploader{err: errors.New("connection refused")}
	imp := New(uploader, nil)

	result, report, err := imp.Run(context.Background(), KindAssets, path)
	if err == nil {
		t.Fatal("Expected the upload error to surface")
	}
	if result != nil {
		t.Error("Failed upload should return no result")
	}
	if report == nil || report.Rows != 1 {
		t.Errorf("Preflight report should still be returned, got %+v", report)
	}
}
