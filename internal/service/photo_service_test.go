package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	hr "house_rental"
	"house_rental/internal/storage"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0}, 64)...)

func memFile(name string, content []byte) UploadFile {
	return UploadFile{
		Name: name,
		Size: int64(len(content)),
		Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(content)), nil },
	}
}

func newPhotoSvc(store *memStore, limits UploadLimits) (*PhotoService, afero.Fs) {
	fs := afero.NewMemMapFs()
	repos := store.repos()
	activity := NewActivityService(repos.Activity, nil)
	return NewPhotoService(repos.Photos, repos.Houses, storage.New(fs, "uploads"), activity, limits), fs
}

func fileCount(t *testing.T, fs afero.Fs) int {
	t.Helper()
	n := 0
	_ = afero.Walk(fs, "uploads", func(_ string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			n++
		}
		return nil
	})
	return n
}

func TestPhotoService_Upload_ZeroFiles(t *testing.T) {
	svc, _ := newPhotoSvc(newMemStore(), testLimits)
	_, err := svc.Upload(context.Background(), "u1", UploadRequest{})
	if !errors.Is(err, hr.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestPhotoService_Upload_OneFile(t *testing.T) {
	store := newMemStore()
	svc, fs := newPhotoSvc(store, testLimits)

	paths, err := svc.Upload(context.Background(), "u1", UploadRequest{Files: []UploadFile{memFile("a.png", pngBytes)}})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if len(paths) != 1 || !strings.HasPrefix(paths[0], storage.PublicPrefix+"/houses/") {
		t.Fatalf("unexpected paths: %v", paths)
	}
	if len(store.photos) != 1 || store.photos[0].Path != paths[0] {
		t.Fatalf("expected one photo record for %q, got %+v", paths[0], store.photos)
	}
	if n := fileCount(t, fs); n != 1 {
		t.Fatalf("expected 1 stored file, got %d", n)
	}

	got, err := svc.Get(context.Background(), store.photos[0].ID)
	if err != nil || got.Path != paths[0] {
		t.Fatalf("Get = %+v, %v", got, err)
	}
}

func TestPhotoService_Upload_RejectedBeforeAnyWrite(t *testing.T) {
	cases := map[string][]UploadFile{
		"too many files": {memFile("a.png", pngBytes), memFile("b.png", pngBytes)},
		"too large":      {{Name: "big.png", Size: 2 << 20, Open: memFile("big.png", pngBytes).Open}},
		"not an image":   {memFile("notes.txt", []byte("hello world"))},
	}
	for name, files := range cases {
		t.Run(name, func(t *testing.T) {
			store := newMemStore()
			svc, fs := newPhotoSvc(store, testLimits)
			_, err := svc.Upload(context.Background(), "u1", UploadRequest{Files: files})
			if !errors.Is(err, hr.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if len(store.photos) != 0 || fileCount(t, fs) != 0 {
				t.Fatalf("nothing should be stored")
			}
		})
	}
}

func TestPhotoService_Upload_RecordFailureIsStorageError(t *testing.T) {
	store := newMemStore()
	store.failWith["photos.create"] = errDBDown
	svc, fs := newPhotoSvc(store, testLimits)

	_, err := svc.Upload(context.Background(), "u1", UploadRequest{Files: []UploadFile{memFile("a.png", pngBytes)}})
	if !errors.Is(err, hr.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if n := fileCount(t, fs); n != 0 {
		t.Fatalf("stored file should be removed on failure, found %d", n)
	}
}

func TestPhotoService_Upload_AttachesToOwnedHouse(t *testing.T) {
	store := newMemStore()
	houses := newHouseSvc(store)
	svc, _ := newPhotoSvc(store, testLimits)
	ctx := context.Background()

	h, err := houses.Create(ctx, "owner-a", cabin())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	req := UploadRequest{Files: []UploadFile{memFile("a.png", pngBytes)}, HouseID: h.ID}

	if _, err := svc.Upload(ctx, "intruder", req); !errors.Is(err, hr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	paths, err := svc.Upload(ctx, "owner-a", req)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	got, _ := houses.Get(ctx, h.ID)
	if len(got.Photos) != 1 || got.Photos[0] != paths[0] {
		t.Fatalf("house photos = %v, want %v", got.Photos, paths)
	}
	if store.photos[0].House != h.ID {
		t.Fatalf("photo record not linked to house: %+v", store.photos[0])
	}

	if _, err := svc.Upload(ctx, "owner-a", UploadRequest{Files: req.Files, HouseID: uuid.NewString()}); !errors.Is(err, hr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown house, got %v", err)
	}
}

func TestPhotoService_Upload_HousePhotoLimit(t *testing.T) {
	store := newMemStore()
	houses := newHouseSvc(store)
	svc, _ := newPhotoSvc(store, testLimits)
	ctx := context.Background()

	in := cabin()
	in.Photos = []string{"1", "2", "3", "4", "5"}
	h, err := houses.Create(ctx, "owner-a", in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.Upload(ctx, "owner-a", UploadRequest{Files: []UploadFile{memFile("a.png", pngBytes)}, HouseID: h.ID})
	if !errors.Is(err, hr.ErrValidation) {
		t.Fatalf("expected ErrValidation at the photo limit, got %v", err)
	}
}

func TestPhotoService_Get_MalformedAndMissing(t *testing.T) {
	svc, _ := newPhotoSvc(newMemStore(), testLimits)
	if _, err := svc.Get(context.Background(), "123"); !errors.Is(err, hr.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.Get(context.Background(), uuid.NewString()); !errors.Is(err, hr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPhotoService_Upload_AttachFailureRollsBack(t *testing.T) {
	store := newMemStore()
	houses := newHouseSvc(store)
	svc, fs := newPhotoSvc(store, testLimits)
	ctx := context.Background()

	h, err := houses.Create(ctx, "owner-a", cabin())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	store.failWith["houses.update"] = errors.New("disk full")

	_, err = svc.Upload(ctx, "owner-a", UploadRequest{Files: []UploadFile{memFile("a.png", pngBytes)}, HouseID: h.ID})
	if !errors.Is(err, hr.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if records, _ := svc.List(ctx); len(records) != 0 {
		t.Fatalf("photo records left after failed upload: %+v", records)
	}
	if n := fileCount(t, fs); n != 0 {
		t.Fatalf("files left after failed upload: %d", n)
	}
}

func TestPhotoService_Upload_HouseFilledMeanwhile(t *testing.T) {
	store := newMemStore()
	houses := newHouseSvc(store)
	ctx := context.Background()

	in := cabin()
	in.Photos = []string{"1", "2", "3", "4"}
	h, err := houses.Create(ctx, "owner-a", in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	repos := store.repos()
	hooked := &hookedHouses{Houses: repos.Houses}
	hooked.afterGet = func() {
		// another upload takes the last slot after the limit pre-check
		if _, err := repos.Houses.AttachPhotos(ctx, h.ID, []string{"5"}, testLimits.MaxHousePhotos, time.Now()); err != nil {
			t.Errorf("concurrent attach: %v", err)
		}
	}
	fs := afero.NewMemMapFs()
	svc := NewPhotoService(repos.Photos, hooked, storage.New(fs, "uploads"), NewActivityService(repos.Activity, nil), testLimits)

	_, err = svc.Upload(ctx, "owner-a", UploadRequest{Files: []UploadFile{memFile("a.png", pngBytes)}, HouseID: h.ID})
	if !errors.Is(err, hr.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	got, _ := houses.Get(ctx, h.ID)
	if len(got.Photos) != testLimits.MaxHousePhotos {
		t.Fatalf("house holds %d photos, want %d", len(got.Photos), testLimits.MaxHousePhotos)
	}
	if len(store.photos) != 0 || fileCount(t, fs) != 0 {
		t.Fatalf("rejected upload must leave nothing behind")
	}
}
