package llm

type VllmTokenizeReq struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type VllmTokenizeResponse struct {
	Count       int64   `json:"count"`
	MaxModelLen int64   `json:"max_model_len"`
	Tokens      []int64 `json:"tokens"`
}

type TGITokenizeReq struct {
	Inputs string `json:"inputs"`
}

type TGIToken struct {
	Id    int64  `json:"id"`
	Start int64  `json:"start"`
	Stop  int64  `json:"stop"`
	Text  string `json:"text"`
}

// TGITokenizeResponse is the token list returned by TGI /tokenize
type TGITokenizeResponse []TGIToken
