package importing

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadRecords lê o CSV inteiro para a memória. A primeira linha é o cabeçalho
// e define os nomes das colunas; linhas com menos campos que o cabeçalho
// simplesmente não trazem as colunas restantes. Aspas soltas dentro de um
// campo, como em títulos de produto, são mantidas no valor.
func ReadRecords(r io.Reader) ([]RawRecord, error) {
	reader := csv.NewReader(skipBOM(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []RawRecord{}, nil
		}
		return nil, err
	}

	for i, name := range header {
		header[i] = strings.TrimSpace(name)
	}

	records := make([]RawRecord, 0)
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		record := make(RawRecord, len(header))
		for i, value := range fields {
			if i >= len(header) {
				break
			}
			record[header[i]] = value
		}
		records = append(records, record)
	}

	return records, nil
}

// skipBOM remove o BOM UTF-8 que o Excel adiciona ao exportar CSV
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	prefix, err := br.Peek(len(utf8BOM))
	if err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}
