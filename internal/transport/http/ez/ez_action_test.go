package ez

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"issue-tracker/internal/domain"
)

func init() { gin.SetMode(gin.TestMode) }

type echoIn struct {
	Name string `json:"name"`
}

type echoOut struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func newEngine() *gin.Engine {
	r := gin.New()
	e := New(r.Group("/x"), nil)

	RegisterAction(e, Action[echoIn, echoOut]{
		Method: http.MethodPost,
		Path:   "/items",
		Binder: BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *echoIn) (echoOut, error) {
			if in.Name == "" {
				return echoOut{}, domain.ValidationError("Name can't be blank")
			}
			return echoOut{ID: 1, Name: in.Name}, nil
		},
	})
	RegisterAction(e.Group("/items"), Action[struct{}, struct{}]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: BindNone,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			id, err := ParamID(c, "id", "Item")
			if err != nil {
				return struct{}{}, err
			}
			if id == 500 {
				return struct{}{}, errors.New("boom")
			}
			return struct{}{}, nil
		},
	})
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAction(t *testing.T) {
	r := newEngine()

	w := do(r, http.MethodPost, "/x/items", `{"name":"a"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"a"}`, w.Body.String())

	// 空请求体按 {} 处理，交给业务校验
	w = do(r, http.MethodPost, "/x/items", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"Validation failed","details":["Name can't be blank"]}`, w.Body.String())

	w = do(r, http.MethodPost, "/x/items", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteAndParamID(t *testing.T) {
	r := newEngine()

	w := do(r, http.MethodDelete, "/x/items/3", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	for _, bad := range []string{"0", "abc", "-1"} {
		w = do(r, http.MethodDelete, "/x/items/"+bad, "")
		assert.Equal(t, http.StatusNotFound, w.Code, bad)
		assert.JSONEq(t, `{"error":"Resource not found","message":"Item not found"}`, w.Body.String())
	}

	w = do(r, http.MethodDelete, "/x/items/500", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}
