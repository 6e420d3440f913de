package timeline

import (
	"context"
	"sync"
)

// Storer 时间轴快照持久化
// 时间轴本体在内存中编辑，按项目保存/加载快照
type Storer interface {
	Save(ctx context.Context, projectID string, tracks []*Track) error
	Load(ctx context.Context, projectID string) ([]*Track, error)
}

// State 可注入的时间轴状态容器
// 单进程内唯一的编辑事实来源，测试中为每个用例构造新实例
type State struct {
	mu             sync.RWMutex
	tracks         []*Track
	selectedClipID string
}

// NewState 创建空时间轴状态
func NewState() *State {
	return &State{tracks: make([]*Track, 0, 4)}
}

// Core business domain
type Core struct {
	state *State
	store Storer

	// onChange 轨道/片段集合变化后回调，合成器借此回收失效的解码句柄
	onChange []func()
}

type Option func(*Core)

// WithStore 注入快照存储
func WithStore(store Storer) Option {
	return func(c *Core) { c.store = store }
}

// NewCore create business domain
func NewCore(state *State, opts ...Option) *Core {
	c := Core{state: state}
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

// OnChange 注册变更回调，在每次成功的轨道/片段变更后触发
func (c *Core) OnChange(fn func()) {
	c.onChange = append(c.onChange, fn)
}

func (c *Core) notify() {
	for _, fn := range c.onChange {
		fn()
	}
}
