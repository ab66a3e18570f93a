package deflate

import (
	"sync"
)

var tokensPool = sync.Pool{
	New: func() interface{} {
		tokens := make([]token, 0, 256)
		return &tokens
	},
}

func takeTokens() *[]token {
	return tokensPool.Get().(*[]token)
}

func giveTokens(tokens *[]token) {
	*tokens = (*tokens)[:0]
	tokensPool.Put(tokens)
}
