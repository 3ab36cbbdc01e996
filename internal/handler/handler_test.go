package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskdesk/internal/handler"
	"taskdesk/internal/repository"
	"taskdesk/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func setupRouter(t *testing.T) (*gin.Engine, *repository.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewStore(repository.WithClock(func() time.Time { return fixedNow }))
	svc := service.NewFromStore(store, service.WithDelay(service.NoDelay{}))

	employees := handler.NewEmployeeHandler(svc)
	tasks := handler.NewTaskHandler(svc)

	r := gin.New()
	r.GET("/employees", employees.GetAll)
	r.GET("/employees/:id", employees.GetByID)
	r.POST("/employees", employees.Create)
	r.PUT("/employees/:id", employees.Update)
	r.DELETE("/employees/:id", employees.Delete)

	r.GET("/tasks", tasks.GetAll)
	r.GET("/tasks/:id", tasks.GetByID)
	r.POST("/tasks", tasks.Create)
	r.PUT("/tasks/:id", tasks.Update)
	r.DELETE("/tasks/:id", tasks.Delete)
	return r, store
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &v), resp.Body.String())
	return v
}

func errorMessage(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, resp)["error"]
}
