package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ixugo/goddd/domain/uniqueid"
	"github.com/ixugo/goddd/pkg/orm"
	"github.com/vidit-app/vidit/internal/core/playback"
	"github.com/vidit-app/vidit/internal/core/project"
	"github.com/vidit-app/vidit/internal/core/timeline"
)

// memProjectStore 单条记录的内存实现，忽略查询条件
type memProjectStore struct {
	data project.Project
}

func (m *memProjectStore) Project() project.ProjectStorer { return (*memProjectDB)(m) }

type memProjectDB memProjectStore

func (m *memProjectDB) Find(_ context.Context, items *[]*project.Project, _ orm.Pager, _ ...orm.QueryOption) (int64, error) {
	out := m.data
	*items = append(*items, &out)
	return 1, nil
}

func (m *memProjectDB) Get(_ context.Context, out *project.Project, _ ...orm.QueryOption) error {
	*out = m.data
	return nil
}

func (m *memProjectDB) Add(_ context.Context, in *project.Project) error {
	m.data = *in
	return nil
}

func (m *memProjectDB) Edit(_ context.Context, out *project.Project, changeFn func(*project.Project), _ ...orm.QueryOption) error {
	changeFn(&m.data)
	*out = m.data
	return nil
}

func (m *memProjectDB) Del(_ context.Context, out *project.Project, _ ...orm.QueryOption) error {
	*out = m.data
	return nil
}

type memTimelineStore struct{}

func (memTimelineStore) Save(context.Context, string, []*timeline.Track) error { return nil }

func (memTimelineStore) Load(context.Context, string) ([]*timeline.Track, error) { return nil, nil }

func TestEditProjectSyncsClockDuration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &memProjectStore{data: project.Project{ID: "pro1", Name: "demo", Duration: 60}}
	clock := playback.NewClock(60, 30)
	a := NewProjectAPI(project.NewCore(store, uniqueid.Core{}), clock)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: "pro1"}}
	c.Request = httptest.NewRequest(http.MethodPut, "/projects/pro1", nil)

	if _, err := a.editProject(c, &project.EditProjectInput{Name: "demo", Duration: 120}); err != nil {
		t.Fatalf("editProject err: %v", err)
	}
	if got := clock.Status().Duration; got != 120 {
		t.Errorf("clock duration = %v, want 120", got)
	}
	// 时钟上限已抬高，跳转不再夹取到旧时长
	if got := clock.Seek(100); got != 100 {
		t.Errorf("seek after edit = %v, want 100", got)
	}
}

func TestLoadTimelineSyncsClockDuration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &memProjectStore{data: project.Project{ID: "pro1", Name: "demo", Duration: 90}}
	clock := playback.NewClock(60, 30)
	tl := timeline.NewCore(timeline.NewState(), timeline.WithStore(memTimelineStore{}))
	a := NewTimelineAPI(tl, project.NewCore(store, uniqueid.Core{}), clock)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: "pro1"}}
	c.Request = httptest.NewRequest(http.MethodPost, "/timeline/projects/pro1/load", nil)

	if _, err := a.loadTimeline(c, &struct{}{}); err != nil {
		t.Fatalf("loadTimeline err: %v", err)
	}
	if got := clock.Status().Duration; got != 90 {
		t.Errorf("clock duration = %v, want 90", got)
	}
}
