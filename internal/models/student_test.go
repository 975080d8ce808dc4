package models_test

import (
	"encoding/json"
	"testing"

	"studentreg/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentPatch_UnmarshalJSONTracksNulls(t *testing.T) {
	var p models.StudentPatch
	require.NoError(t, json.Unmarshal([]byte(`{"firstName": null, "course": "Data Science"}`), &p))

	assert.Nil(t, p.FirstName)
	assert.True(t, p.IsNull("firstName"))
	assert.False(t, p.IsNull("lastName"))
	require.NotNil(t, p.Course)
	assert.Equal(t, "Data Science", *p.Course)
	assert.False(t, p.IsNull("course"))
}

func TestStudentPatch_UnmarshalJSONAbsentFields(t *testing.T) {
	var p models.StudentPatch
	require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
	assert.Equal(t, models.StudentPatch{}, p)

	assert.Error(t, json.Unmarshal([]byte(`{"firstName": 42}`), &p))
}

func TestStudentPatch_Apply(t *testing.T) {
	course := "Data Science"
	s := models.Student{ID: "1", FirstName: "Ada", Course: "Computer Science"}

	got := models.StudentPatch{Course: &course}.Apply(s)
	assert.Equal(t, models.Student{ID: "1", FirstName: "Ada", Course: "Data Science"}, got)
}
