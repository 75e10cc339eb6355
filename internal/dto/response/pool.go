package response

type PoolSummaryResponse struct {
	Total int `json:"total"`
	Free  int `json:"free"`
	Used  int `json:"used"`
}

type FreeNumbersResponse struct {
	Numbers []int `json:"numbers"`
}
