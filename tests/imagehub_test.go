package tests

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"sync"
	"testing"

	"imagehub/internal/transport/http/dto"
	"imagehub/tests/suite"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rgbPNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 200, G: 10, B: 10, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func grayPNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, w, h))

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func createFolder(st *suite.Suite, name string) dto.FolderResponse {
	st.Helper()

	resp, env := st.JSON(http.MethodPost, "/api/v1/folders", `{"name":"`+name+`"}`)
	require.Equal(st.T, http.StatusCreated, resp.StatusCode, env.Details)

	var folder dto.FolderResponse
	require.NoError(st.T, json.Unmarshal(env.Data, &folder))

	return folder
}

func getFolder(st *suite.Suite, ident string) dto.FolderDetailResponse {
	st.Helper()

	resp, env := st.Get("/api/v1/folders/" + ident)
	require.Equal(st.T, http.StatusOK, resp.StatusCode, env.Details)

	var folder dto.FolderDetailResponse
	require.NoError(st.T, json.Unmarshal(env.Data, &folder))

	return folder
}

func upload(st *suite.Suite, folder, filename string, content []byte) dto.ImageResponse {
	st.Helper()

	resp, env := st.Upload(folder, filename, content)
	require.Equal(st.T, http.StatusCreated, resp.StatusCode, env.Details)

	var img dto.ImageResponse
	require.NoError(st.T, json.Unmarshal(env.Data, &img))

	return img
}

func TestImagehub_EndToEnd(t *testing.T) {
	_, st := suite.New(t)

	t.Run("folder slugs get numeric suffixes", func(t *testing.T) {
		st := st.With(t)

		first := createFolder(st, "Test Folder")
		second := createFolder(st, "Test-Folder")
		third := createFolder(st, "test folder")

		assert.Equal(t, "test-folder", first.Slug)
		assert.Equal(t, "test-folder-1", second.Slug)
		assert.Equal(t, "test-folder-2", third.Slug)
	})

	t.Run("duplicate folder name conflicts", func(t *testing.T) {
		st := st.With(t)

		name := gofakeit.Noun() + " " + gofakeit.UUID()
		createFolder(st, name)

		resp, _ := st.JSON(http.MethodPost, "/api/v1/folders", `{"name":"`+name+`"}`)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("upload extracts metadata and recounts", func(t *testing.T) {
		st := st.With(t)

		folder := createFolder(st, "Nature "+gofakeit.UUID())
		content := rgbPNG(t, 100, 100)

		img := upload(st, folder.Slug, "sunset.png", content)
		assert.Equal(t, "sunset", img.Name)
		assert.Equal(t, "sunset", img.Slug)
		assert.Equal(t, 100, img.Width)
		assert.Equal(t, 100, img.Height)
		assert.True(t, img.IsColor)
		assert.Equal(t, int64(len(content)), img.FileSize)
		assert.Equal(t, "image/png", img.MimeType)

		gray := upload(st, folder.Slug, "night.png", grayPNG(t, 20, 10))
		assert.False(t, gray.IsColor)

		assert.Equal(t, 2, getFolder(st, folder.Slug).ImageCount)

		code, body := st.Raw(img.URL)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, content, body)
	})

	t.Run("invalid uploads leave folder untouched", func(t *testing.T) {
		st := st.With(t)

		folder := createFolder(st, "Docs "+gofakeit.UUID())

		resp, env := st.Upload(folder.Slug, "notes.txt", []byte("hello"))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, env.Details, "invalid image file")

		resp, _ = st.Upload(folder.Slug, "broken.png", []byte("not a png"))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		detail := getFolder(st, folder.Slug)
		assert.Equal(t, 0, detail.ImageCount)
		assert.Empty(t, detail.Images)
	})

	t.Run("image slugs are unique per folder", func(t *testing.T) {
		st := st.With(t)

		a := createFolder(st, "A "+gofakeit.UUID())
		b := createFolder(st, "B "+gofakeit.UUID())
		content := rgbPNG(t, 4, 4)

		first := upload(st, a.Slug, "cat.png", content)
		second := upload(st, a.Slug, "cat.png", content)
		other := upload(st, b.Slug, "cat.png", content)

		assert.Equal(t, "cat", first.Slug)
		assert.Equal(t, "cat-1", second.Slug)
		assert.Equal(t, "cat", other.Slug)
		assert.NotEqual(t, first.URL, second.URL)

		resp, env := st.Get("/api/v1/folders/" + a.Slug + "/images/cat-1")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var fetched dto.ImageResponse
		require.NoError(t, json.Unmarshal(env.Data, &fetched))
		assert.Equal(t, second.ID, fetched.ID)
	})

	t.Run("delete image recounts and removes file", func(t *testing.T) {
		st := st.With(t)

		folder := createFolder(st, "Trash "+gofakeit.UUID())
		content := rgbPNG(t, 8, 8)

		var images []dto.ImageResponse
		for i := 0; i < 3; i++ {
			images = append(images, upload(st, folder.Slug, "shot.png", content))
		}
		assert.Equal(t, 3, getFolder(st, folder.Slug).ImageCount)

		resp := st.Delete("/api/v1/folders/" + folder.Slug + "/images/" + images[0].Slug)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Equal(t, 2, getFolder(st, folder.Slug).ImageCount)

		code, _ := st.Raw(images[0].URL)
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("rename keeps slug and delete cascades", func(t *testing.T) {
		st := st.With(t)

		folder := createFolder(st, "Before "+gofakeit.UUID())
		img := upload(st, folder.Slug, "a.png", rgbPNG(t, 2, 2))

		newName := "After " + gofakeit.UUID()
		resp, env := st.JSON(http.MethodPatch, "/api/v1/folders/"+folder.Slug, `{"name":"`+newName+`"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode, env.Details)

		renamed := getFolder(st, folder.Slug)
		assert.Equal(t, newName, renamed.Name)
		assert.Equal(t, folder.Slug, renamed.Slug)

		resp = st.Delete("/api/v1/folders/" + folder.Slug)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp, _ = st.Get("/api/v1/folders/" + folder.Slug)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		code, _ := st.Raw(img.URL)
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("concurrent folders with the same base slug", func(t *testing.T) {
		st := st.With(t)

		base := "race " + gofakeit.Noun()
		names := []string{base, base + "!", base + "?"}

		var wg sync.WaitGroup
		results := make(chan int, len(names))

		for _, name := range names {
			wg.Add(1)
			go func(name string) {
				defer wg.Done()
				resp, _ := st.JSON(http.MethodPost, "/api/v1/folders", `{"name":"`+name+`"}`)
				results <- resp.StatusCode
			}(name)
		}

		wg.Wait()
		close(results)

		for code := range results {
			assert.Equal(t, http.StatusCreated, code)
		}

		resp, env := st.Get("/api/v1/folders")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var folders []dto.FolderResponse
		require.NoError(t, json.Unmarshal(env.Data, &folders))

		seen := make(map[string]bool)
		for _, f := range folders {
			assert.False(t, seen[f.Slug], "duplicate slug %s", f.Slug)
			seen[f.Slug] = true
		}
	})
}
