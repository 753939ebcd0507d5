package consts

const (
	// MemeCacheKey 成品梗图 URL 缓存，后接请求指纹
	MemeCacheKey = "studio:meme:cache:"

	// GenCounterKey 各内容类型的生成计数（多实例共享），后接内容类型
	GenCounterKey = "studio:freshness:counter:"

	// SweepLockKey 定时巡检任务的分布式锁
	SweepLockKey = "studio:freshness:sweep:lock"
)
