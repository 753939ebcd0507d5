package consts

const (
	// SeverityHigh 报警严重程度
	SeverityHigh   = "HIGH"
	SeverityMedium = "MEDIUM"
	SeverityLow    = "LOW"

	// MimePrefixImage 上传文件类型前缀
	MimePrefixImage = "image/"

	// NeverTrainedDays 从未训练时的哨兵值
	NeverTrainedDays = 999
)
