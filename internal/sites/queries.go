package sites

// SQL queries for the site-directory store.
const (
	// queryUpsertSite inserts or overwrites one directory entry keyed by its
	// code. Codes absent from a new file are left untouched.
	queryUpsertSite = `
INSERT INTO sites (sigla, nome_da_localidade, localidade, area, ddd, telefone, cx, tx, ie)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (sigla) DO UPDATE SET
	nome_da_localidade = EXCLUDED.nome_da_localidade,
	localidade         = EXCLUDED.localidade,
	area               = EXCLUDED.area,
	ddd                = EXCLUDED.ddd,
	telefone           = EXCLUDED.telefone,
	cx                 = EXCLUDED.cx,
	tx                 = EXCLUDED.tx,
	ie                 = EXCLUDED.ie`

	queryListSites = `
SELECT sigla, nome_da_localidade, localidade, area, ddd, telefone, cx, tx, ie
FROM sites
ORDER BY sigla`
)
