package docs_test

import (
	"encoding/json"
	"testing"

	"taskdesk/docs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocIsValidJSON(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Info  map[string]any            `json:"info"`
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "Taskdesk API", doc.Info["title"])
	for _, path := range []string{"/login", "/employees", "/employees/{id}", "/tasks", "/tasks/{id}"} {
		assert.Contains(t, doc.Paths, path)
	}
	assert.Len(t, doc.Paths["/tasks/{id}"], 3)
}
