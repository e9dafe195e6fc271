package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
)

func TestLocalStorage_Upload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "http://files.local/")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	resp, err := store.Upload(context.Background(), &UploadRequest{
		Key:         "trips/AMB001/TRIP1.json",
		Reader:      strings.NewReader(`{"tripId":"TRIP1"}`),
		ContentType: "application/json",
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if resp.URL != "http://files.local/trips/AMB001/TRIP1.json" || resp.Size != 18 {
		t.Errorf("unexpected response %+v", resp)
	}

	data, err := os.ReadFile(filepath.Join(dir, "trips", "AMB001", "TRIP1.json"))
	if err != nil || string(data) != `{"tripId":"TRIP1"}` {
		t.Fatalf("stored %q, %v", data, err)
	}
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	for _, key := range []string{"../outside.json", "trips/../../x", ""} {
		if _, err := store.Upload(context.Background(), &UploadRequest{Key: key, Reader: strings.NewReader("x")}); err == nil {
			t.Errorf("key %q should be rejected", key)
		}
	}
}

func TestAWSS3Storage_Upload(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotMethod, gotPath, gotBody = r.Method, r.URL.Path, string(body)
		w.Header().Set("ETag", `"abc123"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	awsCfg := aws.Config{
		Region: "ap-south-1",
		Credentials: aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
			return aws.Credentials{AccessKeyID: "test", SecretAccessKey: "test"}, nil
		}),
	}
	store := newAWSS3Storage(awsCfg, &S3Config{Region: "ap-south-1", Bucket: "archives", Endpoint: server.URL})

	payload := `{"tripId":"TRIP1"}`
	resp, err := store.Upload(context.Background(), &UploadRequest{
		Key:         "trips/AMB001/TRIP1.json",
		Reader:      strings.NewReader(payload),
		ContentType: "application/json",
		Size:        int64(len(payload)),
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if gotMethod != http.MethodPut || gotPath != "/archives/trips/AMB001/TRIP1.json" {
		t.Errorf("unexpected request %s %s", gotMethod, gotPath)
	}
	if !strings.Contains(gotBody, payload) {
		t.Errorf("body %q does not carry the archive", gotBody)
	}
	if resp.ETag != `"abc123"` || resp.Location != "s3://archives/trips/AMB001/TRIP1.json" {
		t.Errorf("unexpected response %+v", resp)
	}
	if resp.URL != "https://archives.s3.ap-south-1.amazonaws.com/trips/AMB001/TRIP1.json" {
		t.Errorf("URL = %s", resp.URL)
	}
}
