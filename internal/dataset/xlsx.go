package dataset

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
)

type xlsxWorkbook struct {
	Sheets []struct {
		Name    string `xml:"name,attr"`
		SheetID int    `xml:"sheetId,attr"`
		RID     string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sheets>sheet"`
}

type xlsxRels struct {
	Items []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type xlsxShared struct {
	Items []struct {
		T    string `xml:"t"`
		Runs []struct {
			T string `xml:"t"`
		} `xml:"r"`
	} `xml:"si"`
}

// readXLSX returns the rows of one worksheet as strings. sheetName wins over sheetIndex
// (1-based); with neither, the first sheet is read.
func readXLSX(p string, sheetName string, sheetIndex int) ([][]string, error) {
	zr, err := zip.OpenReader(p)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer zr.Close()
	files := map[string]*zip.File{}
	for _, f := range zr.File {
		files[f.Name] = f
	}

	var wb xlsxWorkbook
	if err := decodeZipXML(files, "xl/workbook.xml", &wb); err != nil {
		return nil, err
	}
	var rels xlsxRels
	if err := decodeZipXML(files, "xl/_rels/workbook.xml.rels", &rels); err != nil {
		return nil, err
	}
	targets := make(map[string]string, len(rels.Items))
	for _, r := range rels.Items {
		targets[r.ID] = normalizeRelPath(r.Target)
	}

	target := ""
	if sheetName != "" {
		names := make([]string, 0, len(wb.Sheets))
		for _, s := range wb.Sheets {
			names = append(names, s.Name)
			if strings.EqualFold(s.Name, sheetName) {
				target = targets[s.RID]
			}
		}
		if target == "" {
			return nil, fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
				sheetName, filepath.Base(p), strings.Join(names, ", "))
		}
	} else {
		idx := sheetIndex
		if idx <= 0 {
			idx = 1
		}
		for _, s := range wb.Sheets {
			if s.SheetID == idx {
				target = targets[s.RID]
				break
			}
		}
		if target == "" {
			target = fmt.Sprintf("xl/worksheets/sheet%d.xml", idx)
		}
	}

	var shared []string
	if _, ok := files["xl/sharedStrings.xml"]; ok {
		var ss xlsxShared
		if err := decodeZipXML(files, "xl/sharedStrings.xml", &ss); err != nil {
			return nil, err
		}
		for _, si := range ss.Items {
			if len(si.Runs) == 0 {
				shared = append(shared, si.T)
				continue
			}
			var b strings.Builder
			for _, r := range si.Runs {
				b.WriteString(r.T)
			}
			shared = append(shared, b.String())
		}
	}

	f, ok := files[target]
	if !ok {
		return nil, fmt.Errorf("open xlsx: worksheet %s missing", target)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open worksheet: %w", err)
	}
	defer rc.Close()
	return readSheetRows(rc, shared)
}

func decodeZipXML(files map[string]*zip.File, name string, v interface{}) error {
	f, ok := files[name]
	if !ok {
		// tolerate minimal workbooks that omit optional parts
		return nil
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()
	if err := xml.NewDecoder(rc).Decode(v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

type xlsxCell struct {
	Ref    string `xml:"r,attr"`
	Type   string `xml:"t,attr"`
	Value  string `xml:"v"`
	Inline string `xml:"is>t"`
}

// readSheetRows streams <row> elements so large sheets are not unmarshalled at once.
func readSheetRows(r io.Reader, shared []string) ([][]string, error) {
	dec := xml.NewDecoder(r)
	var rows [][]string
	var cur []string
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parse worksheet: %w", err)
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "row":
				cur = nil
			case "c":
				var c xlsxCell
				if err := dec.DecodeElement(&c, &se); err != nil {
					return nil, fmt.Errorf("parse cell: %w", err)
				}
				col := colIndexFromRef(c.Ref)
				if col < 0 {
					col = len(cur)
				}
				for len(cur) <= col {
					cur = append(cur, "")
				}
				cur[col] = cellText(c, shared)
			}
		case xml.EndElement:
			if se.Name.Local == "row" {
				rows = append(rows, cur)
			}
		}
	}
}

func cellText(c xlsxCell, shared []string) string {
	switch c.Type {
	case "s":
		idx := atoiSafe(c.Value)
		if idx >= 0 && idx < len(shared) {
			return shared[idx]
		}
		return ""
	case "inlineStr":
		return c.Inline
	default:
		return c.Value
	}
}

// helpers for refs like "C12" -> 2 (0-based index)
func colIndexFromRef(ref string) int {
	idx := 0
	for i := 0; i < len(ref); i++ {
		c := ref[i]
		switch {
		case c >= 'A' && c <= 'Z':
			idx = idx*26 + int(c-'A'+1)
		case c >= 'a' && c <= 'z':
			idx = idx*26 + int(c-'a'+1)
		default:
			return idx - 1
		}
	}
	return idx - 1
}

func atoiSafe(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// normalizeRelPath converts relationship Target paths to ZIP entry names.
// Targets may be absolute ("/xl/worksheets/sheet1.xml") or relative to xl/.
func normalizeRelPath(rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	if strings.HasPrefix(rel, "xl/") {
		return rel
	}
	return path.Join("xl", rel)
}

// encodeXLSX writes a minimal single-sheet workbook. Header cells are inline strings;
// numeric-looking data cells are stored as numbers.
func encodeXLSX(w io.Writer, sheet string, rows [][]string) error {
	zw := zip.NewWriter(w)
	add := func(name, body string) error {
		f, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = io.WriteString(f, body)
		return err
	}
	var sb bytes.Buffer
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?><worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>`)
	for ri, row := range rows {
		fmt.Fprintf(&sb, `<row r="%d">`, ri+1)
		for ci, v := range row {
			ref := colName(ci) + fmt.Sprint(ri+1)
			if ri > 0 && looksNumeric(v) {
				fmt.Fprintf(&sb, `<c r="%s"><v>%s</v></c>`, ref, xmlEscape(v))
			} else {
				fmt.Fprintf(&sb, `<c r="%s" t="inlineStr"><is><t>%s</t></is></c>`, ref, xmlEscape(v))
			}
		}
		sb.WriteString(`</row>`)
	}
	sb.WriteString(`</sheetData></worksheet>`)

	parts := []struct{ name, body string }{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/><Override PartName="/xl/worksheets/sheet1.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/></Types>`},
		{"_rels/.rels", `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/></Relationships>`},
		{"xl/workbook.xml", `<?xml version="1.0" encoding="UTF-8"?><workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><sheets><sheet name="` + xmlEscape(sheet) + `" sheetId="1" r:id="rId1"/></sheets></workbook>`},
		{"xl/_rels/workbook.xml.rels", `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="/xl/worksheets/sheet1.xml"/></Relationships>`},
		{"xl/worksheets/sheet1.xml", sb.String()},
	}
	for _, p := range parts {
		if err := add(p.name, p.body); err != nil {
			_ = zw.Close()
			return fmt.Errorf("write xlsx: %w", err)
		}
	}
	return zw.Close()
}

func colName(i int) string {
	name := ""
	for i >= 0 {
		name = string(rune('A'+i%26)) + name
		i = i/26 - 1
	}
	return name
}

func xmlEscape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
