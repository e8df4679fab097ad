// Package domain decodes NOAA GFS MOS guidance bulletins into structured,
// time-indexed forecast reports.
//
// # Data Source
//
// Model Output Statistics (MOS) bulletins are produced by the National
// Weather Service from GFS model runs, available as fixed-width text products
// (https://www.nws.noaa.gov/mdl/synop/products.php). Two variants are
// supported: MAV (short-range guidance, 3-hourly periods out to 72 hours) and
// MEX (extended-range guidance, 12-hourly periods out to 192 hours). The
// collector service fetches the raw text per station and publishes it as a
// JSON envelope to the Kafka source topic.
//
// # Bulletin Layout
//
// A bulletin is a monospaced grid. The first four characters are the ICAO
// station identifier, and the header line carries the issuance date/time:
//
//	KJFK   GFS MOS GUIDANCE    1/02/2023  1200 UTC
//	DT /JAN   2            /JAN   3                /JAN   4
//	HR   15 18 21 00 03 06 09 12 15 18 21 00 03 06 09 12 18 00 06 12
//	TMP  50 45 40 35 30 28 26 25 27 33 38 40 37 33 30 28 26 24 22 25
//
// An hour line enumerates the forecast valid hours; every data row below it
// packs one value per forecast period into fixed-width columns aligned under
// the hour line (3 characters wide for MAV, 4 for MEX). The 3-character
// prefix of each data row identifies the meteorological field: TMP/DPT
// temperatures, WDR/WSP wind, P06..P24 precipitation chance, Q06..Q24
// precipitation amount, CLD sky cover, TYP precipitation type, and so on.
// Rows whose prefix is not in the active handler table (the DT date ruler,
// trailing annotations) are ignored.
//
// # Time Reconstruction
//
// Only the hour of day is given for each period; the date is implied. Valid
// times are reconstructed by rolling forward from the issuance time: each
// hour token is interpreted as the next occurrence of that hour at or after
// the previous period, crossing into the next calendar day whenever the hour
// does not increase. MEX hour tokens are forecast hours (24, 36, ... 192) and
// pass through the same rule unchanged, since they increase monotonically.
//
// # Value Conventions
//
// An empty column means "no value for this period" and is preserved as an
// absent slot, never as zero. Numeric tokens go through [ParseNumber]; wind
// direction is encoded in tens of degrees and gains a trailing zero before
// conversion. Thunderstorm rows (T06/T12 in MAV) carry value pairs split
// across two adjacent columns, e.g. "12/34" is a 12% thunderstorm and 34%
// severe-storm probability; an isolated value that never finds its partner
// column is dropped. MEX bulletins may append a CLIMO climatology block to
// the right of the grid, which is truncated before decoding to keep column
// alignment intact.
//
// # Report Identity
//
// Report IDs are deterministic SHA-256 hashes of station|type|issuance. This
// enables idempotent upserts downstream and replay safety: re-decoding the
// same bulletin produces the same ID. See [generateID].
package domain
