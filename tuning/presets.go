package tuning

import (
	"strings"
)

// FactoryPreset is a named generator for one tuning of the curated bank.
type FactoryPreset struct {
	Name     string
	Generate func() []float64
}

// CuratedBankName and UserBankName name the two banks of a fresh install.
const (
	CuratedBankName = "Curated"
	UserBankName    = "User"
)

// return a fixed set of ratios
func raw(set ...float64) func() []float64 {
	return func() []float64 { return append([]float64(nil), set...) }
}

// return ratios parsed from space separated intervals, e.g. "1/1 9/8 5/4".
// panics on bad syntax, since the preset table is constant.
func ji(s string) func() []float64 {
	fields := strings.Fields(s)
	set := make([]float64, len(fields))
	for i, f := range fields {
		iv, err := parseInterval(f)
		if err != nil {
			panic(err.Error())
		}
		set[i] = iv.ratio()
	}
	return raw(set...)
}

func harmonic(n int) func() []float64    { return func() []float64 { return HarmonicSeries(n) } }
func subharmonic(n int) func() []float64 { return func() []float64 { return SubharmonicSeries(n) } }
func harmonicSubharmonic(n int) func() []float64 {
	return func() []float64 { return HarmonicSubharmonicSeries(n) }
}
func hexany(a, b, c, d float64) func() []float64 {
	return func() []float64 { return Hexany([4]float64{a, b, c, d}) }
}
func dekany(a, b, c, d, e float64) func() []float64 {
	return func() []float64 { return Dekany([5]float64{a, b, c, d, e}) }
}
func mos(g float64, level int) func() []float64 {
	return func() []float64 { return MomentOfSymmetry(g, level, 0) }
}
func et(n int) func() []float64 { return func() []float64 { return EqualTemperament(n) } }

// 17 tone just gamut the north indian ragas below select their degrees from
const northIndian17 = "1/1 256/243 16/15 10/9 9/8 32/27 6/5 5/4 4/3 45/32 3/2 128/81 8/5 5/3 27/16 16/9 15/8"

// FactoryPresets returns the generators of the curated bank, in display
// order. 12ET is not included; sorting adds it to every bank.
func FactoryPresets() []FactoryPreset {
	return []FactoryPreset{
		{"Chain of pure fifths", raw(1, 3, 9, 27, 81, 243, 729, 2187, 6561, 19683, 59049, 177147)},

		// harmonic and subharmonic segments
		{"Harmonic Series: Dyad", harmonic(2)},
		{"Subharmonic Series: Dyad", subharmonic(2)},
		{"Harmonic+Subharmonic Series: Dyad", harmonicSubharmonic(2)},
		{"Harmonic Series: Triad", harmonic(3)},
		{"Subharmonic Series: Triad", subharmonic(3)},
		{"Harmonic+Subharmonic Series: Triad", harmonicSubharmonic(3)},
		{"Harmonic Series: Tetrad", harmonic(4)},
		{"Subharmonic Series: Tetrad", subharmonic(4)},
		{"Harmonic+Subharmonic Series: Tetrad", harmonicSubharmonic(4)},
		{"Harmonic Series: Pentad", harmonic(5)},
		{"Subharmonic Series: Pentad", subharmonic(5)},
		{"Harmonic Series", harmonic(12)},
		{"Harmonic Series", harmonic(16)},
		{"Subharmonic Series", subharmonic(16)},
		{"Harmonic+Subharmonic Series", harmonicSubharmonic(16)},

		// Erv Wilson
		{"Wilson Hexany(1, 3, 5, 7)", hexany(1, 3, 5, 7)},
		{"Wilson Hexany(1, 3, 5, 45)", hexany(1, 3, 5, 45)},
		{"Wilson Hexany(1, 3, 5, 9)", hexany(1, 3, 5, 9)},
		{"Wilson Hexany(1, 3, 5, 15)", hexany(1, 3, 5, 15)},
		{"Wilson Hexany(1, 3, 5, 81)", hexany(1, 3, 5, 81)},
		{"Wilson Dekany(1, 3, 5, 9, 81)", dekany(1, 3, 5, 9, 81)},
		{"Wilson Hexany(1, 3, 5, 121)", hexany(1, 3, 5, 121)},
		{"Wilson Hexany(1, 15, 45, 75)", hexany(1, 15, 45, 75)},
		{"Wilson Hexany(1, 17, 19, 23)", hexany(1, 17, 19, 23)},
		{"Wilson Hexany(1, 45, 135, 225)", hexany(1, 45, 135, 225)},
		{"Wilson Hexany(3, 5, 7, 9)", hexany(3, 5, 7, 9)},
		{"Wilson Hexany(3, 5, 15, 19)", hexany(3, 5, 15, 19)},
		{"Wilson Diaphonic", ji("1/1 27/26 9/8 4/3 18/13 3/2 27/16")},
		{"Wilson Hexany(3, 5, 15, 27)", hexany(3, 5, 15, 27)},
		{"Wilson Hexany(5, 7, 21, 35)", hexany(5, 7, 21, 35)},
		{"Wilson Highland Bagpipes", raw(32, 36, 39, 42.75, 48, 52, 57)},
		{"Wilson MOS G:0.2641", mos(0.2641, 5)},
		{"Wilson MOS G:0.292787", mos(0.292787, 6)},
		{"Wilson MOS G:0.405699", mos(0.405699700117111, 5)},
		{"Wilson MOS G:0.415226", mos(0.415226, 5)},
		{"Wilson MOS G:0.436385", mos(0.436385, 5)},
		{"Wilson MOS G:0.328173", raw(1.0, 1.139858796310911, 1.1521550874588165, 1.1645840255420112,
			1.1771470414968035, 1.1898455816958056, 1.2026811081144566, 1.2156550984993382,
			1.2287690465383074, 1.2420244620324628, 1.2554228710699677, 1.4310048026790014,
			1.4464418478154171, 1.4620454209481724, 1.4778173185074355, 1.493759356302464,
			1.5098733697306612, 1.5261612139888834, 1.5426247642870288, 1.5592659160639266,
			1.5760865852055608, 1.7965161578941846, 1.8158961774201803, 1.8354852600014551,
			1.8552856609175254, 1.8752996597768661, 1.8955295607793536, 1.915977692981552,
			1.9366464105648538, 1.9575380931065183, 1.9786551458536268)},
		{"Wilson Evangelina", ji("1/1 135/128 13/12 10/9 9/8 7/6 11/9 5/4 81/64 4/3 11/8 45/32 " +
			"17/12 3/2 19/12 13/8 5/3 27/16 7/4 11/6 15/8 243/128")},
		{"Wilson North Indian:Kafi", ji("1/1 9/8 6/5 4/3 3/2 5/3 16/9")},
		{"Wilson North Indian:Bhairavi", ji("1/1 16/15 6/5 4/3 3/2 8/5 16/9")},
		{"Wilson North Indian:Bhairav", ji("1/1 16/15 5/4 4/3 3/2 8/5 15/8")},
		{"Wilson North Indian:Marwa", ji("1/1 16/15 5/4 45/32 5/3 15/8")},
		{"Wilson North Indian:Purvi", ji("1/1 16/15 5/4 45/32 3/2 8/5 15/8")},
		{"Wilson North Indian:Todi", ji("1/1 16/15 6/5 45/32 3/2 8/5 15/8")},
		{"Wilson North Indian:Madhubanti", ji("1/1 9/8 6/5 45/32 3/2 5/3 15/8")},
		{"Wilson North Indian:AhirBhairav", ji("1/1 16/15 5/4 4/3 3/2 5/3 16/9")},
		{"Wilson North Indian:ChandraKanada", ji("1/1 9/8 6/5 4/3 3/2 8/5 15/8")},
		{"Wilson North Indian:BasantMukhair", ji("1/1 16/15 5/4 4/3 3/2 8/5 16/9")},
		{"Wilson North Indian:Champakali", ji("1/1 9/8 5/4 45/32 3/2 5/3 16/9")},
		{"Wilson North Indian:Patdeep", ji("1/1 9/8 6/5 4/3 3/2 5/3 15/8")},
		{"Wilson North Indian:MohanKauns", ji("1/1 5/4 4/3 8/5 16/9")},
		{"Wilson North Indian:17", ji(northIndian17)},

		// Jose Garcia
		{"Garcia: Meta Mavila (37-50-67-91)", ji("1/1 1027/1024 67/64 559/512 37/32 153/128 " +
			"2539/2048 167/128 1389/1024 91/64 189/128 25/16 415/256 225/128 937/512 31/16")},
		{"Garcia: Wilson 7-limit marimba", ji("1/1 28/27 16/15 10/9 9/8 7/6 6/5 5/4 35/27 4/3 " +
			"27/20 45/32 35/24 3/2 14/9 8/5 5/3 27/16 7/4 9/5 15/8 35/18")},
		{"Garcia: linear 15/13-52/45 alternating", ji("1/1 40/39 27/26 16/15 128/117 9/8 15/13 " +
			"32/27 6/5 16/13 81/64 135/104 4/3 160/117 18/13 64/45 512/351 3/2 20/13 81/52 8/5 " +
			"64/39 27/16 45/26 16/9 9/5 24/13 256/135 405/208")},

		// Kraig Grady
		{"Grady: S 7-limit Pentatonic", ji("1/1 7/6 4/3 3/2 7/4")},
		{"Grady: S Pentatonic 11-limit Scale 1", ji("1/1 9/8 11/8 3/2 7/4")},
		{"Grady: S Pentatonic 11-limit Scale 2", ji("1/1 5/4 11/8 3/2 7/4")},
		{"Grady: S Centaur 7-limit Minor", ji("1/1 9/8 7/6 4/3 3/2 14/9 7/4")},
		{"Grady: S Centaur Soft Major on E", ji("1/1 28/25 56/46 4/3 3/2 42/25 28/15")},
		{"Grady: A Centaur", ji("1/1 21/20 9/8 7/6 5/4 4/3 7/5 3/2 14/9 5/3 7/4 15/8")},
		{"Grady: Double Dekany 14-tone", ji("1/1 35/32 9/8 7/6 5/4 21/16 45/32 35/24 3/2 105/64 " +
			"5/3 7/4 15/8 63/32")},
		{"Grady: A-Narushima 19-tone 7-limit", ji("1/1 21/20 35/32 9/8 7/6 6/5 5/4 21/16 4/3 7/5 " +
			"35/24 3/2 14/9 8/5 5/3 7/4 9/5 15/8 63/32")},
		{"Grady: Sisiutl 12-tone", ji("1/1 28/27 9/8 7/6 14/11 4/3 11/8 3/2 14/9 56/33 7/4 11/6")},
		{"Grady: Wilson pre-Sisiutl 17", ji("1/1 28/27 9/8 7/6 14/11 4/3 11/8 3/2 14/9 3/2 14/9 " +
			"56/33 7/4 11/6")},
		{"Grady: Beebalm 7-limit", ji("1/1 17/16 9/8 7/6 5/4 4/3 17/12 3/2 14/9 5/3 16/9 17/9")},
		{"Grady: Schulter Zeta Centauri 12 tone", ji("1/1 13/12 9/8 7/6 11/9 4/3 13/9 3/2 14/9 " +
			"13/8 7/4 11/6")},
		{"Grady: Schulter Shur", ji("1/1 27/26 9/8 27/22 4/3 18/13 3/2 18/11 16/9 24/13")},
		{"Grady: Poole 17", ji("1/1 33/32 13/12 9/8 7/6 11/9 14/11 4/3 11/8 13/9 3/2 14/9 44/27 " +
			"27/16 7/4 11/6 21/11")},
		{"Grady: 11-limit Helix Song", ji("1/1 9/8 7/6 5/4 4/3 11/8 3/2 5/3 7/4 11/6")},
		{"David: Double 1-3-5-7 Hexany 12-Tone", ji("1/1 16/15 35/32 7/6 5/4 4/3 7/5 35/24 8/5 " +
			"5/3 7/4 28/15")},
		{"Wilson Double Hexany+ 12 tone", ji("1/1 49/48 8/7 7/6 5/4 4/3 10/7 35/24 80/49 5/3 " +
			"7/4 40/21")},
		{"Grady: Wilson Triple Hexany +", ji("1/1 15/14 9/8 7/6 5/4 21/16 10/7 3/2 45/28 5/3 " +
			"7/4 15/8")},
		{"Grady: Wilson Super 7", ji("1/1 35/32 8/7 5/4 245/192 10/7 35/24 3/2 49/32 12/7 7/4 " +
			"245/128")},
		{"David: Dual Harmonic Subharmonic", ji("1/1 16/15 9/8 6/5 9/7 4/3 7/5 3/2 8/5 12/7 9/5 " +
			"28/15")},
		{"Wilson/David: Enharmonics", ji("1/1 28/27 9/8 7/6 6/5 4/3 35/24 3/2 14/9 8/5 7/4 25/18")},
		{"Grady: Wilson First Pelog", ji("1/1 16/15 64/55 5/4 4/3 16/11 8/5 128/75 20/11")},
		{"Grady: Wilson Meta-Pelog 1", ji("1/1 571/512 153/128 41/32 4/3 11/8 209/128 7/4 15/8")},
		{"Grady: Wilson Meta-Pelog 2", ji("1/1 9/8 19/16 41/32 11/8 3/2 13/8 7/4 15/8")},
		{"Grady: Wilson Meta-Ptolemy 10", ji("1/1 33/32 9/8 73/64 5/4 11/8 3/2 49/32 27/16 15/8")},
		{"Grady: Olympos Staircase", ji("1/1 28/27 9/8 7/6 9/7 4/3 49/36 3/2 14/9 12/7 7/4 49/27")},

		// Marcus Hobbs
		{"Hobbs MOS G:0.238186", mos(0.238186, 6)},
		{"Hobbs Hexany(9, 25, 49, 81)", hexany(9, 25, 49, 81)},
		// fibonacci triplets (X-3, 3, X, X+3)
		{"Hobbs Hexany(3, 2.111, 5.111, 8.111)", hexany(3, 2.111, 5.111, 8.111)},
		{"Hobbs Hexany(3, 1.346, 4.346, 7.346)", hexany(3, 1.346, 4.346, 7.346)},
		// H[n] = H[n-1] + H[n-7]
		{"Hobbs Recurrence Relation 01", raw(1, 19, 5, 3, 15)},
		{"Hobbs Recurrence Relation 02", raw(35, 74, 23, 51, 61)},
		{"Hobbs Recurrence Relation 03", raw(74, 150, 85, 106, 120, 61)},
		{"Hobbs Recurrence Relation 04", raw(1, 9, 5, 23, 48, 7)},
		{"Hobbs Recurrence Relation 05", raw(1, 9, 21, 3, 25, 15)},
		{"Hobbs Recurrence Relation 06", raw(1, 75, 19, 5, 3, 15)},
		{"Hobbs Recurrence Relation 07", raw(1, 17, 10, 47, 3, 13, 7)},
		{"Hobbs Recurrence Relation 08", raw(1, 9, 5, 21, 3, 27, 7)},
		{"Hobbs Recurrence Relation 09", raw(1, 9, 21, 3, 25, 15, 31)},
		{"Hobbs Recurrence Relation 10", raw(1, 75, 19, 5, 94, 3, 15)},
		{"Hobbs Recurrence Relation 11", raw(9, 40, 21, 25, 52, 15, 31)},
		{"Hobbs Recurrence Relation 12", raw(1, 18, 5, 21, 3, 25, 15)},
		{"Hobbs Recurrence Relation 13", raw(1, 65, 9, 37, 151, 21, 86, 12, 49, 200, 28, 114)},

		// Stephen Taylor
		{"Taylor MOS G: 0.855088", mos(0.855088, 6)},
		{"Taylor MOS G: 0.855088", raw(1.0, 1.094694266037451, 1.1983555360952733,
			1.2103631752554715, 1.3249776277750469, 1.3382540326235606, 1.4649790160145073,
			1.4796582484056586, 1.6197734002246928, 1.6360036874185588, 1.7909238558332221,
			1.8088690872578694, 1.9801586178335864)},
		{"Taylor MOS G: 0.791400", mos(0.7914, 5)},
		{"Taylor MOS G: 0.78207964", mos(0.78207964, 5)},
		{"Taylor MOS G: 0.618033", mos(0.618033, 4)},
		{"Taylor MOS G: 0.232587", mos(0.232587, 5)},
		{"Taylor MOS G: 0.5757381", mos(0.5757381, 6)},
		{"Taylor Pasadena JI 27", ji("1/1 81/80 17/16 16/15 10/9 9/8 8/7 7/6 19/16 6/5 11/9 5/4 " +
			"9/7 21/16 4/3 11/8 7/5 3/2 11/7 8/5 5/3 13/8 27/16 7/4 9/5 11/6 15/8")},

		// Harry Partch, 43 tone pure scale
		{"Partch", ji("1/1 81/80 33/32 21/20 16/15 12/11 11/10 10/9 9/8 8/7 7/6 32/27 6/5 11/9 " +
			"5/4 14/11 9/7 21/16 4/3 27/20 11/8 7/5 10/7 16/11 40/27 3/2 32/21 14/9 11/7 8/5 " +
			"18/11 5/3 27/16 12/7 7/4 16/9 9/5 20/11 11/6 15/8 40/21 64/33 160/81")},

		{"Equal Temperament", et(7)},
		{"Equal Temperament", et(31)},
		{"Equal Temperament", et(41)},
		{"Equal Temperament", et(53)},
	}
}

// return the factory bank, unsorted
func newCuratedBank() *Bank {
	b := &Bank{Name: CuratedBankName, Order: 0, IsEditable: false}
	for _, p := range FactoryPresets() {
		b.Tunings = append(b.Tunings, NewTuning(p.Name, p.Generate()))
	}
	return b
}

// return an empty user bank
func newUserBank() *Bank {
	return &Bank{Name: UserBankName, Order: 1, IsEditable: true}
}
