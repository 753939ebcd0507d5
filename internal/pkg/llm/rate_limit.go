package llm

import "golang.org/x/sync/semaphore"

// TextWeight 文本生成的并发上限
const TextWeight = 4

var TextSem = semaphore.NewWeighted(TextWeight)
