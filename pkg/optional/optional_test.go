package optional

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOptional(t *testing.T) {
	present := Some("PersonKit")
	absent := None[string]()

	value, ok := present.Get()
	assert.True(t, ok)
	assert.Equal(t, "PersonKit", value)

	_, ok = absent.Get()
	assert.False(t, ok)
	assert.False(t, Optional[string]{}.IsPresent())

	assert.Equal(t, "PersonKit", present.OrElse("fallback"))
	assert.Equal(t, "fallback", absent.OrElse("fallback"))

	assert.Equal(t, present, absent.Or(present))
	assert.Equal(t, present, present.Or(Some("other")))
	assert.False(t, absent.Or(None[string]()).IsPresent())
}

func TestOptional_Equal(t *testing.T) {
	assert.True(t, None[[]string]().Equal(Optional[[]string]{}))
	assert.True(t, Some([]string{"Kit"}).Equal(Some([]string{"Kit"})))
	assert.False(t, Some([]string{"Kit"}).Equal(Some([]string{"OtherKit"})))
	assert.False(t, Some("").Equal(None[string]()))
}

func TestMatch(t *testing.T) {
	describe := func(o Optional[int]) string {
		return Match(o, strconv.Itoa, func() string { return "none" })
	}

	assert.Equal(t, "42", describe(Some(42)))
	assert.Equal(t, "none", describe(None[int]()))
}

type optionalHolder struct {
	Library Optional[string] `json:"library" yaml:"library"`
	File    Optional[string] `json:"file,omitzero" yaml:"file,omitempty"`
}

func TestOptional_JSON(t *testing.T) {
	data, err := json.Marshal(optionalHolder{Library: None[string](), File: None[string]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"library": null}`, string(data))

	data, err = json.Marshal(optionalHolder{Library: Some("Kit"), File: Some("Person")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"library": "Kit", "file": "Person"}`, string(data))

	var holder optionalHolder
	require.NoError(t, json.Unmarshal([]byte(`{"library": null, "file": "Person"}`), &holder))
	assert.False(t, holder.Library.IsPresent())
	assert.Equal(t, Some("Person"), holder.File)

	assert.Error(t, json.Unmarshal([]byte(`{"file": 3}`), &holder))
}

func TestOptional_YAML(t *testing.T) {
	data, err := yaml.Marshal(optionalHolder{Library: Some("Kit")})
	require.NoError(t, err)
	assert.Equal(t, "library: Kit\n", string(data))

	var holder optionalHolder
	require.NoError(t, yaml.Unmarshal([]byte("library: ~\nfile: Person\n"), &holder))
	assert.False(t, holder.Library.IsPresent())
	assert.Equal(t, Some("Person"), holder.File)
}
