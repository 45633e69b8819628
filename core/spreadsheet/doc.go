// Package spreadsheet turns uploaded .xlsx and .csv files into reconcile rows.
//
// Workbooks are read with excelize (first sheet, raw cell values so dates stay
// serial numbers); CSV files with encoding/csv. The first non-empty line is the
// header and every row keeps its 1-based line number in the source file.
package spreadsheet
