package controller

// Status line texts.
const (
	msgLoadRankingFailed = "Erro ao carregar o ranking. Verifique o arquivo %s."
	msgLoadDataFailed    = "Erro ao carregar os dados. Verifique o arquivo %s."
	msgEmptyDataset      = "Ainda não há dados cadastrados para o circuito."
	msgNoYears           = "Não foi possível identificar os anos no arquivo."
	msgEmptyGeneral      = "Ainda não há dados do ranking geral para este ano."
	msgHomeStatus        = "Top %d do ranking geral · ano %s."
	msgGeneralStatus     = "Ranking geral do ano de %s."
	msgMastersStatus     = "Mestres por estilo · ano %s."
)
