package core

import "math"

// Curve 是近因权重曲线的参数：weight(i) = Base^(Start + i·(End−Start)/(n−1)) − 1。
type Curve struct {
	Start float64 `yaml:"start" json:"start"`
	End   float64 `yaml:"end" json:"end"`
	Base  float64 `yaml:"base" json:"base"`
}

var (
	// ClickCurve 用于点击召回，起点更低，新旧事件区分度更大。
	ClickCurve = Curve{Start: 0.1, End: 1, Base: 2}
	// BuyCurve 用于加购/下单召回，区间更窄。
	BuyCurve = Curve{Start: 0.5, End: 1, Base: 2}
)

// Validate 保证曲线严格递增且数值有限。
func (c Curve) Validate() error {
	for _, v := range []float64{c.Start, c.End, c.Base} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ConfigErrorf(ModuleConfig, "config: curve %+v has non-finite parameter", c)
		}
	}
	if c.Base <= 1 {
		return ConfigErrorf(ModuleConfig, "config: curve base must be > 1, got %v", c.Base)
	}
	if c.End <= c.Start {
		return ConfigErrorf(ModuleConfig, "config: curve end (%v) must be greater than start (%v)", c.End, c.Start)
	}
	return nil
}

// DefaultTypeWeights 是 clicks/carts/orders 的默认乘数。
func DefaultTypeWeights() map[EventType]float64 {
	return map[EventType]float64{
		EventClick: 1,
		EventCart:  6,
		EventOrder: 3,
	}
}

// Configuration 是候选生成的不可变配置，构造 Generator 时注入，处理过程中只读。
type Configuration struct {
	// RecNum 输出候选列表的固定长度
	RecNum int

	// TypeWeights 事件类型 -> 乘数，必须覆盖 session 中出现的每种类型
	TypeWeights map[EventType]float64

	ClickCurve Curve
	BuyCurve   Curve

	// DedupFallback 为 true 时，热门补齐会跳过已选中的 aid。
	// 默认 false，保持与线上一致的输出（补齐可能与历史重复）。
	DedupFallback bool
}

// DefaultConfiguration 返回 RecNum=20 的默认配置。
func DefaultConfiguration() Configuration {
	return Configuration{
		RecNum:      20,
		TypeWeights: DefaultTypeWeights(),
		ClickCurve:  ClickCurve,
		BuyCurve:    BuyCurve,
	}
}

func (c *Configuration) Validate() error {
	if c.RecNum <= 0 {
		return ConfigErrorf(ModuleConfig, "config: rec_num must be positive, got %d", c.RecNum)
	}
	if len(c.TypeWeights) == 0 {
		return ConfigErrorf(ModuleConfig, "config: type_weights is empty")
	}
	if err := c.ClickCurve.Validate(); err != nil {
		return err
	}
	return c.BuyCurve.Validate()
}

// Multiplier 返回事件类型的乘数；缺失时返回 CONFIG_ERROR，不做静默默认。
func (c *Configuration) Multiplier(t EventType) (float64, error) {
	w, ok := c.TypeWeights[t]
	if !ok {
		return 0, ConfigErrorf(ModuleConfig, "config: no type weight for event type %s", t)
	}
	return w, nil
}

// CheckSession 在处理前校验 session：非空，且每种事件类型都配置了乘数。
func (c *Configuration) CheckSession(s *Session) error {
	if s == nil || len(s.Events) == 0 {
		return InputErrorf(ModuleCandidate, "candidate: empty session")
	}
	for _, e := range s.Events {
		if _, err := c.Multiplier(e.Type); err != nil {
			return err
		}
	}
	return nil
}

// Clone 深拷贝 TypeWeights，保证注入后外部修改不影响 Generator。
func (c Configuration) Clone() Configuration {
	weights := make(map[EventType]float64, len(c.TypeWeights))
	for k, v := range c.TypeWeights {
		weights[k] = v
	}
	c.TypeWeights = weights
	return c
}
