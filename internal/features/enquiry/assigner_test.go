package enquiry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-crm-leads/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAssignEmployeeRoundRobinBySecond(t *testing.T) {
	pools := EmployeePools{
		Default: []string{"D1", "D2", "D3"},
		Areas:   map[string][]string{"Wakad": {"W1", "W2"}},
	}
	sec := int64(1700000000)
	a := newAssigner(pools, func() time.Time { return time.Unix(sec, 0) })

	assert.Equal(t, "W1", a.AssignEmployee("wakad"))
	sec++
	assert.Equal(t, "W2", a.AssignEmployee("  WAKAD "))
	// 1700000001 % 3 == 0
	assert.Equal(t, "D1", a.AssignEmployee("Unknown Area"))
	assert.Equal(t, "D1", a.AssignEmployee(""))
}

func TestAssignEmployeeEmptyDefaultPool(t *testing.T) {
	a := newAssigner(EmployeePools{}, time.Now)
	assert.Empty(t, a.AssignEmployee("anywhere"))
}

func TestLoadEmployeePoolsFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pools.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
default: [A1, A2]
areas:
  Baner: [B1]
  Empty: []
`), 0o600))

	a, err := NewEmployeeAssigner(&config.Config{EmployeePoolsFile: path}, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "B1", a.AssignEmployee("Baner"))
	assert.Contains(t, []string{"A1", "A2"}, a.AssignEmployee("Empty"))
}

func TestLoadEmployeePoolsRejectsEmptyDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pools.yaml")
	require.NoError(t, os.WriteFile(path, []byte("areas:\n  Baner: [B1]\n"), 0o600))

	_, err := LoadEmployeePools(path)
	assert.Error(t, err)
}

func TestNewEmployeeAssignerBuiltInTable(t *testing.T) {
	a, err := NewEmployeeAssigner(&config.Config{}, zap.NewNop())
	require.NoError(t, err)
	assert.Contains(t, []string{"EMP004", "EMP005"}, a.AssignEmployee("Wakad"))
	assert.Contains(t, defaultPools.Default, a.AssignEmployee("Nowhere"))
}
