package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCriteria(t *testing.T) {
	tests := []struct {
		name         string
		criteria     *Criteria
		expectedExpr string
		expectedArgs []interface{}
	}{
		{
			name:         "without criteria",
			criteria:     nil,
			expectedExpr: "",
			expectedArgs: []interface{}{},
		},
		{
			name:         "with criteria",
			criteria:     &Criteria{Field: "name", Operator: "=", Value: "Foo"},
			expectedExpr: "name=? COLLATE NOCASE",
			expectedArgs: []interface{}{"Foo"},
		},
		{
			name:         "operator is not validated",
			criteria:     &Criteria{Field: "description", Operator: " LIKE ", Value: "%bar%"},
			expectedExpr: "description LIKE ? COLLATE NOCASE",
			expectedArgs: []interface{}{"%bar%"},
		},
		{
			name:         "equal to",
			criteria:     EqualTo("name", "Worker"),
			expectedExpr: "name=? COLLATE NOCASE",
			expectedArgs: []interface{}{"Worker"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, args := BuildCriteria(tt.criteria)

			assert.Equal(t, tt.expectedExpr, expr)
			assert.NotNil(t, args)
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}
