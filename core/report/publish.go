package report

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"intake-reconciler/core/match"
	"intake-reconciler/core/storage"

	"github.com/minio/minio-go/v7"
)

// Artifact object names below the publish prefix.
const (
	JSONObject = "intake_matches.json"
	CSVObject  = "intake_matches.csv"
)

// Published lists the uploaded object names.
type Published struct {
	JSON string `json:"json"`
	CSV  string `json:"csv"`
}

// Publish renders both artifacts and uploads them to the bucket under prefix.
func Publish(ctx context.Context, client storage.Client, bucket, prefix string, r *match.Report) (*Published, error) {
	var jsonBuf, csvBuf bytes.Buffer
	if err := WriteJSON(&jsonBuf, r); err != nil {
		return nil, err
	}
	if err := WriteCSV(&csvBuf, r); err != nil {
		return nil, err
	}

	out := &Published{
		JSON: path.Join(prefix, JSONObject),
		CSV:  path.Join(prefix, CSVObject),
	}

	uploads := []struct {
		name        string
		buf         *bytes.Buffer
		contentType string
	}{
		{out.JSON, &jsonBuf, "application/json"},
		{out.CSV, &csvBuf, "text/csv"},
	}
	for _, u := range uploads {
		size := int64(u.buf.Len())
		if _, err := client.PutObject(ctx, bucket, u.name, u.buf, size, minio.PutObjectOptions{ContentType: u.contentType}); err != nil {
			return nil, fmt.Errorf("failed to upload %s: %w", u.name, err)
		}
	}
	return out, nil
}
