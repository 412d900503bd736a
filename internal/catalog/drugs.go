package catalog

import (
	"github.com/san-kum/cardiosim/internal/curves"
	"github.com/san-kum/cardiosim/internal/pacer"
)

// Drug names as shown on the selection panel.
const (
	Noradrenalina  = "Noradrenalina 20mcg"
	Adrenalina     = "Adrenalina 20mcg"
	Isoprenalina   = "Isoprenalina 20mcg"
	Efedrina       = "Efedrina 5mg"
	Acetilcolina   = "Acetilcolina 20mcg"
	Pilocarpina    = "Pilocarpina 1,5mg"
	Alfabloqueador = "Alfabloqueador"
	Neostigmina    = "Neostigmina 0,5mg"
	Nicotina       = "Nicotina 300mg"
	Propanolol     = "Propanolol 10mg"
	Atropina       = "Atropina 10mg"
	Hexametonio    = "Hexametonio 20mg"
	Nenhuma        = "Nenhuma"
)

// NoDrug is the headline used when nothing was selected.
const NoDrug = "Nenhuma droga aplicada"

// Drug ties a response curve to its heart rate choreography and the legend
// shown while it plays.
type Drug struct {
	Name     string
	Curve    curves.Curve
	Schedule pacer.Schedule
	Legend   string
}

// GridOrder is the layout of the selection panel, three per row.
var GridOrder = []string{
	Noradrenalina, Alfabloqueador, Neostigmina,
	Adrenalina, Propanolol, Pilocarpina,
	Isoprenalina, Acetilcolina, Nicotina,
	Efedrina, Atropina, Hexametonio,
	Nenhuma,
}

// ApplicationOrder is the order selected drugs take effect in. The last one
// applied owns the chart and the legend.
var ApplicationOrder = []string{
	Noradrenalina, Adrenalina, Isoprenalina, Efedrina,
	Acetilcolina, Pilocarpina, Alfabloqueador, Neostigmina,
	Nicotina, Propanolol, Atropina, Hexametonio,
}

// Dependencies maps a trigger drug to the drugs it checks and unchecks
// along with it.
var Dependencies = map[string][]string{
	Alfabloqueador: {Adrenalina, Noradrenalina},
	Neostigmina:    {Acetilcolina},
	Propanolol:     {Noradrenalina, Isoprenalina, Adrenalina},
	Atropina:       {Acetilcolina, Pilocarpina},
	Hexametonio:    {Nicotina, Atropina},
}

func builtin() []Drug {
	return []Drug{
		{
			Name:     Noradrenalina,
			Curve:    curves.Noradrenalina(),
			Schedule: pacer.At(3000, 200, 6000, 700, 9000, 500),
			Legend: "Noradrenalina: Estímulo dos receptores alfa1 e beta1. Provoca vasoconstrição, que eleva a pressão arterial. " +
				"Estímulo do beta1 provoca taquicardia e aumenta a pressão sanguínea. " +
				"Devido ao grande aumento da PA, ocorrem reflexos que vencem o estímulo beta, provocando bradicardia reflexa.",
		},
		{
			Name:     Adrenalina,
			Curve:    curves.Adrenalina(),
			Schedule: pacer.At(3000, 200, 6000, 700, 9000, 500),
			Legend: "Adrenalina: Estímulo dos receptores alfa1, gerando vasoconstrição, beta1 provocando taquicardia e beta2, " +
				"provocando vasodilatação na área dos músculos. Elevação da PA.",
		},
		{
			Name:     Isoprenalina,
			Curve:    curves.Isoprenalina(),
			Schedule: pacer.At(3000, 100, 4000, 700),
			Legend:   "Isoprenalina: Estimulante beta, provoca acentuada taquicardia, vasodilatação e queda da PA. Rapidamente capturada pelos tecidos.",
		},
		{
			Name:     Efedrina,
			Curve:    curves.Efedrina(),
			Schedule: pacer.At(5000, 500, 8000, 700),
			Legend:   "Efedrina: Pouca atuação em receptores beta. Ligeira taquicardia e hipertensão um pouco acentuada. Absorção mais demorada.",
		},
		{
			Name:     Acetilcolina,
			Curve:    curves.Acetilcolina(),
			Schedule: pacer.At(2000, 900, 4000, 700),
			Legend: "Acetilcolina: Atuação nos receptores muscarínicos. Provoca bradicardia e vasodilatação, resultando em queda da PA. " +
				"Ação rápida pela degradação por acetilcolinesterase.",
		},
		{
			Name:     Pilocarpina,
			Curve:    curves.Pilocarpina(),
			Schedule: pacer.At(3000, 800, 6000, 700),
			Legend: "Pilocarpina: Estimula receptores muscarínicos, provocando bradicardia e vasodilatação, levando a queda de PA. " +
				"Ação mais duradoura por não ser metabolizada por colinesterases.",
		},
		{
			Name:     Alfabloqueador,
			Curve:    curves.Alfabloqueador(),
			Schedule: pacer.At(2000, 700, 3000, 400, 3500, 600, 5000, 500),
			Legend: "Alfabloqueador: Bloqueio dos receptores alfa, provocando vasodilatação e hipotensão. " +
				"Na presença de, primeiro, noradrenalina, há uma pequena taquicardia e elevação da PA. " +
				"Posteriormente, na presença de Adrenalina, há vasodilatação e provoca hipotensão.",
		},
		{
			Name:     Neostigmina,
			Curve:    curves.Neostigmina(),
			Schedule: pacer.At(2000, 800, 3000, 1000, 4000, 700),
			Legend: "Neostigmina: Afeta as enzimas que degradam a acetilcolina, causando uma ação mais demorada dela. " +
				"Provoca uma ligeira queda de PA e, ao administrar 20mcg de Acetilcolina, " +
				"há uma bradicardia intensa, hipotensão acentuada e aumento da duração do efeito da acetilcolina.",
		},
		{
			Name:     Nicotina,
			Curve:    curves.Nicotina(),
			Schedule: pacer.At(2000, 800, 3000, 400, 3500, 500, 5000, 700),
			Legend: "Nicotina: Atua como estimulante ganglionar, liberando Na nos neurônios pela atuação nos receptores de Ac. " +
				"Provoca bradicardia e queda da PA ao se ligar aos gânglios parassimpáticos. " +
				"Ao se ligar aos gânglios simpáticos, provoca taquicardia e hipertensão.",
		},
		{
			Name:     Propanolol,
			Curve:    curves.Propanolol(),
			Schedule: pacer.At(2000, 800),
			Legend: "Propanolol: Bloqueia os receptores beta 1 e 2. Causa bradicardia e vasoconstrição na área dos músculos esqueléticos. " +
				"Na presença de Isoprenalina, não se altera a FC e a PA. Na presença de NA e AD, há apenas o aumento da PA.",
		},
		{
			Name:     Atropina,
			Curve:    curves.Atropina(),
			Schedule: pacer.At(2000, 500, 3000, 400, 5000, 700),
			Legend: "Atropina: Bloqueia os receptores muscarínicos. Provoca taquicardia, pois a noradrenalina atua sem o bloqueio da acetilcolina. " +
				"Com o bloqueio, a administração de 20mcg de Acetilcolina é ineficaz. " +
				"A aplicação de 2mg de Acetilcolina provoca estímulo ganglionar, liberando noradrenalina nos tecidos, provocando taquicardia e hipertensão.",
		},
		{
			Name:     Hexametonio,
			Curve:    curves.Hexametonio(),
			Schedule: pacer.At(2000, 500),
			Legend: "Hexametonio: Bloqueador ganglionar, provoca taquicardia e hipotensão. " +
				"Mesmo ao aplicar a Nicotina e 2mg de Acetilcolina, pelo bloqueio ganglionar, não apresentam efeito.",
		},
		{
			Name:     Nenhuma,
			Curve:    curves.Flat(),
			Schedule: pacer.Schedule{},
			Legend:   "Legenda: Nenhuma droga aplicada.",
		},
	}
}
