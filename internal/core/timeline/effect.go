package timeline

// ResolveEffects 计算片段相对时间 ct 的生效滤镜参数
// 基础为片段级 Effects（缺省时全中性），再被覆盖 ct 的 EffectSegment 整体替换；
// 多个区间同时覆盖 ct 时，定义靠后者生效
func (c *Clip) ResolveEffects(ct float64) Effects {
	eff := NeutralEffects()
	if c.Effects != nil {
		eff = *c.Effects
	}
	for _, seg := range c.EffectSegments {
		if ct >= seg.StartTime && ct <= seg.EndTime {
			eff = seg.Effects
		}
	}
	return eff
}

// Filter 滤镜链中的一个环节
type Filter struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

const (
	FilterBlur       = "blur"
	FilterBrightness = "brightness"
	FilterContrast   = "contrast"
	FilterSaturation = "saturation"
	FilterSepia      = "sepia"
	FilterGrayscale  = "grayscale"
)

// Chain 按固定顺序展开为滤镜链，中性项跳过
// 顺序固定为 blur、brightness、contrast、saturation、sepia、grayscale，
// 与参数书写顺序无关，保证同一参数组合产生同一画面
func (e Effects) Chain() []Filter {
	chain := make([]Filter, 0, 6)
	if e.Blur > 0 {
		chain = append(chain, Filter{Name: FilterBlur, Value: e.Blur})
	}
	if e.Brightness != 100 {
		chain = append(chain, Filter{Name: FilterBrightness, Value: e.Brightness})
	}
	if e.Contrast != 100 {
		chain = append(chain, Filter{Name: FilterContrast, Value: e.Contrast})
	}
	if e.Saturation != 100 {
		chain = append(chain, Filter{Name: FilterSaturation, Value: e.Saturation})
	}
	if e.Sepia > 0 {
		chain = append(chain, Filter{Name: FilterSepia, Value: e.Sepia})
	}
	if e.Grayscale > 0 {
		chain = append(chain, Filter{Name: FilterGrayscale, Value: e.Grayscale})
	}
	return chain
}
