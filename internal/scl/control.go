package scl

import (
	"strings"

	"github.com/spf13/cast"
	"github.com/substation-tools/icdcat/internal/model"
)

// Datasets and control blocks are declared on the zero-instance node only;
// that is a structural convention of the source format. Member order inside a
// dataset is publish/subscribe order and is preserved from the document.

func extractDataSets(ln0 model.LNElement) []model.DataSet {
	var res []model.DataSet
	for _, ds := range ln0.DataSets {
		set := model.DataSet{
			Name:    ds.Name,
			Desc:    ds.Desc,
			Members: make([]model.FCDA, 0, len(ds.FCDAs)),
		}
		for _, f := range ds.FCDAs {
			set.Members = append(set.Members, model.FCDA{
				LDInst:  f.LDInst,
				Prefix:  f.Prefix,
				LNClass: f.LNClass,
				LNInst:  f.LNInst,
				DOName:  f.DOName,
				DAName:  f.DAName,
				FC:      f.FC,
				Ix:      f.Ix,
			})
		}
		res = append(res, set)
	}
	return res
}

func extractControlBlocks(ln0 model.LNElement) model.ControlBlocks {
	var cbs model.ControlBlocks
	for _, g := range ln0.GSEs {
		cbs.Goose = append(cbs.Goose, model.GooseControl{
			Name:    g.Name,
			Desc:    g.Desc,
			DataSet: g.DatSet,
			AppID:   g.AppID,
			ConfRev: cast.ToUint32(g.ConfRev),
			Type:    g.Type,
		})
	}
	for _, r := range ln0.Reports {
		rc := model.ReportControl{
			Name:     r.Name,
			Desc:     r.Desc,
			DataSet:  r.DatSet,
			RptID:    r.RptID,
			ConfRev:  cast.ToUint32(r.ConfRev),
			Buffered: sclBool(r.Buffered),
			BufTime:  cast.ToUint32(r.BufTime),
			IntgPd:   cast.ToUint32(r.IntgPd),
		}
		// all five flags stay false when the TrgOps element is absent
		if t := r.TrgOps; t != nil {
			rc.Trigger = model.TriggerOptions{
				Dchg:   sclBool(t.Dchg),
				Qchg:   sclBool(t.Qchg),
				Dupd:   sclBool(t.Dupd),
				Period: sclBool(t.Period),
				GI:     sclBool(t.GI),
			}
		}
		cbs.Report = append(cbs.Report, rc)
	}
	for _, s := range ln0.SVs {
		sv := model.SampledValueControl{
			Name:    s.Name,
			Desc:    s.Desc,
			DataSet: s.DatSet,
			SmvID:   s.SmvID,
			SmpRate: cast.ToUint32(s.SmpRate),
			NofASDU: cast.ToUint32(s.NofASDU),
			// multicast defaults to true when the attribute is absent
			Multicast: true,
		}
		if strings.TrimSpace(s.Multicast) != "" {
			sv.Multicast = sclBool(s.Multicast)
		}
		cbs.SampledValue = append(cbs.SampledValue, sv)
	}
	return cbs
}

// extractSubscriptions scans the Inputs sections of every logical node of the
// logical device, not only the zero-instance node, since any node may declare
// its own subscriptions.
func extractSubscriptions(ld model.LDeviceElement) []model.ExternalRef {
	var res []model.ExternalRef
	collect := func(ln model.LNElement) {
		for _, in := range ln.Inputs {
			for _, er := range in.ExtRefs {
				res = append(res, model.ExternalRef{
					IEDName:     er.IEDName,
					LDInst:      er.LDInst,
					Prefix:      er.Prefix,
					LNClass:     er.LNClass,
					LNInst:      er.LNInst,
					DOName:      er.DOName,
					DAName:      er.DAName,
					IntAddr:     er.IntAddr,
					ServiceType: er.ServiceType,
				})
			}
		}
	}
	if ld.LN0 != nil {
		collect(*ld.LN0)
	}
	for _, ln := range ld.LNs {
		collect(ln)
	}
	return res
}
