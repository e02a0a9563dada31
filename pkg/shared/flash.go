package shared

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"
)

// Flash cookies carry one-shot notifications across a redirect. They are read once by PopFlash
// and removed in the same response.

func SetFlash(w http.ResponseWriter, name string, value []byte) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    base64.URLEncoding.EncodeToString(value),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func SetFlashMap[K comparable, V any](w http.ResponseWriter, name string, value map[K]V) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	SetFlash(w, name, data)
}

// PopFlash returns the flash called name and expires it. A missing flash is not an error.
func PopFlash(w http.ResponseWriter, r *http.Request, name string) ([]byte, error) {
	c, err := r.Cookie(name)
	if err != nil {
		return nil, nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(1, 0),
		HttpOnly: true,
	})
	return base64.URLEncoding.DecodeString(c.Value)
}

func PopFlashMap[K comparable, V any](w http.ResponseWriter, r *http.Request, name string) (map[K]V, error) {
	data, err := PopFlash(w, r, name)
	if err != nil || len(data) == 0 {
		return nil, err
	}
	var m map[K]V
	return m, json.Unmarshal(data, &m)
}
