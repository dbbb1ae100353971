package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest/assert"
)

type limitConf struct {
	Limit int `json:"limit"`
}

func (c *limitConf) Marshal() ([]byte, error) { return json.Marshal(c) }

func (c *limitConf) Unmarshal(raw []byte) error { return json.Unmarshal(raw, c) }

func (c *limitConf) Validate() error {
	if c.Limit < 0 {
		return errors.Field("Limit", errors.ErrInput, "must not be negative")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	var got limitConf
	err := Load(db, "mypkg", &got)
	assert.IsErr(t, errors.ErrNotFound, err)

	assert.Nil(t, Save(db, "mypkg", &limitConf{Limit: 7}))
	assert.Nil(t, Load(db, "mypkg", &got))
	assert.Equal(t, limitConf{Limit: 7}, got)

	raw, err := db.Get([]byte("_c:mypkg"))
	assert.Nil(t, err)
	assert.NotNil(t, raw)

	err = Save(db, "mypkg", &limitConf{Limit: -1})
	assert.FieldError(t, err, "Limit", errors.ErrInput)
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		genesis string
		want    limitConf
		wantErr *errors.Error
	}{
		"configuration present": {
			genesis: `{"conf": {"mypkg": {"limit": 4}}}`,
			want:    limitConf{Limit: 4},
		},
		"configuration missing": {
			genesis: `{"conf": {"other": {}}}`,
			wantErr: errors.ErrNotFound,
		},
		"invalid configuration": {
			genesis: `{"conf": {"mypkg": {"limit": -3}}}`,
			wantErr: errors.ErrInput,
		},
		"malformed configuration": {
			genesis: `{"conf": {"mypkg": {"limit": "many"}}}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts vault.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.genesis), &opts))

			db := store.MemStore()
			var conf limitConf
			err := InitConfig(db, opts, "mypkg", &conf)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)

			var loaded limitConf
			assert.Nil(t, Load(db, "mypkg", &loaded))
			assert.Equal(t, tc.want, loaded)
		})
	}
}
