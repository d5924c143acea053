package pcap

import (
	"fmt"
	"io"
	"os"
	"time"

	"TrafficLens/internal/core/model"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// serviceNames maps well-known ports to the protocol labels used in the
// record datasets. Anything else keeps its transport name.
var serviceNames = map[int]string{
	21:  "FTP",
	22:  "SSH",
	53:  "DNS",
	80:  "HTTP",
	443: "HTTPS",
}

// ReadRecords reads an offline capture file and converts every IPv4
// packet into a PacketRecord. Non-IP packets are skipped, not errors.
func ReadRecords(path string) ([]*model.PacketRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open capture: %w", err)
	}
	defer f.Close()

	reader, err := pcapgo.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read pcap header: %w", err)
	}

	var records []*model.PacketRecord
	for {
		data, ci, err := reader.ReadPacketData()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read packet: %w", err)
		}
		rec, ok := parseRecord(data, ci.Timestamp, ci.Length)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseRecord decodes one raw frame into a record. The protocol label
// prefers a well-known service name over the bare transport.
func parseRecord(data []byte, ts time.Time, length int) (*model.PacketRecord, bool) {
	packet := gopacket.NewPacket(data, layers.LayerTypeEthernet, gopacket.Default)

	ipLayer := packet.Layer(layers.LayerTypeIPv4)
	if ipLayer == nil {
		return nil, false
	}
	ip := ipLayer.(*layers.IPv4)

	rec := &model.PacketRecord{
		Timestamp: ts,
		SourceIP:  ip.SrcIP.String(),
		DestIP:    ip.DstIP.String(),
		Length:    length,
	}

	switch {
	case packet.Layer(layers.LayerTypeTCP) != nil:
		tcp := packet.Layer(layers.LayerTypeTCP).(*layers.TCP)
		port := int(tcp.DstPort)
		rec.Port = &port
		rec.Protocol = labelFor("TCP", port)
	case packet.Layer(layers.LayerTypeUDP) != nil:
		udp := packet.Layer(layers.LayerTypeUDP).(*layers.UDP)
		port := int(udp.DstPort)
		rec.Port = &port
		rec.Protocol = labelFor("UDP", port)
	case packet.Layer(layers.LayerTypeICMPv4) != nil:
		rec.Protocol = "ICMP"
	default:
		rec.Protocol = ip.Protocol.String()
	}

	return rec, true
}

func labelFor(transport string, port int) string {
	if name, ok := serviceNames[port]; ok {
		return name
	}
	return transport
}
