package roster

// SQL queries for the duty-roster store.
const (
	queryTruncate = `TRUNCATE escala`

	queryInsertDuty = `
INSERT INTO escala (ddd_aba, tecnico, contato_corp, supervisor, cm, segmento, dia_mes, mes_ano, horario)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (ddd_aba, tecnico, dia_mes, mes_ano) DO UPDATE SET
	contato_corp = EXCLUDED.contato_corp,
	supervisor   = EXCLUDED.supervisor,
	cm           = EXCLUDED.cm,
	segmento     = EXCLUDED.segmento,
	horario      = EXCLUDED.horario`

	// queryOnDuty is the narrow roster lookup: region sheets whose tag
	// contains the site's area code, correlated to the coordinator tag.
	// Sentinel shift codes are excluded at the SQL level as well, in case a
	// store was populated by an older pipeline revision.
	// Parameters: $1 = area code, $2 = correlation key, $3 = day, $4 = period.
	queryOnDuty = `
SELECT ddd_aba, tecnico, contato_corp, supervisor, cm, segmento, dia_mes, mes_ano, horario
FROM escala
WHERE ddd_aba LIKE '%' || $1 || '%'
  AND cm ILIKE '%' || $2 || '%'
  AND dia_mes = $3
  AND mes_ano = $4
  AND UPPER(horario) NOT IN ('F', 'C', 'L', 'FE', 'FF', 'NAN', '')
ORDER BY tecnico`

	// queryOnDutyByArea is the broadened fallback: same filter without the
	// coordinator correlation.
	queryOnDutyByArea = `
SELECT ddd_aba, tecnico, contato_corp, supervisor, cm, segmento, dia_mes, mes_ano, horario
FROM escala
WHERE ddd_aba LIKE '%' || $1 || '%'
  AND dia_mes = $2
  AND mes_ano = $3
  AND UPPER(horario) NOT IN ('F', 'C', 'L', 'FE', 'FF', 'NAN', '')
ORDER BY tecnico`
)
