package main

import (
	"flag"
	"log"
	"math/rand"
	"net"
	"os"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// Well-known destination ports so the converted dataset gets a varied
// protocol column (HTTP, HTTPS, SSH, DNS, FTP) instead of bare TCP/UDP.
var wellKnownPorts = []int{21, 22, 53, 80, 443}

func main() {
	outputFile := flag.String("o", "test.pcap", "Output pcap file path")
	packetCount := flag.Int("c", 1000, "Number of packets to generate")
	flag.Parse()

	f, err := os.Create(*outputFile)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer f.Close()

	pcapWriter := pcapgo.NewWriter(f)
	if err := pcapWriter.WriteFileHeader(65536, layers.LinkTypeEthernet); err != nil {
		log.Fatalf("Failed to write pcap header: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	log.Printf("Generating %d packets into %s...", *packetCount, *outputFile)

	ts := time.Now().Add(-time.Duration(*packetCount) * time.Second)
	for i := 0; i < *packetCount; i++ {
		srcIP := net.IP{192, 168, 1, byte(rng.Intn(253) + 2)}
		dstIP := net.IP{byte(rng.Intn(254) + 1), byte(rng.Intn(254) + 1), byte(rng.Intn(254) + 1), byte(rng.Intn(254) + 1)}
		srcPort := rng.Intn(65535-1024) + 1024
		dstPort := wellKnownPorts[rng.Intn(len(wellKnownPorts))]
		if rng.Intn(4) == 0 {
			dstPort = rng.Intn(65535-1024) + 1024
		}
		payload := make([]byte, rng.Intn(1400)+50)
		rng.Read(payload)

		ethLayer := &layers.Ethernet{
			SrcMAC:       net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55},
			DstMAC:       net.HardwareAddr{0x00, 0x66, 0x77, 0x88, 0x99, 0xAA},
			EthernetType: layers.EthernetTypeIPv4,
		}

		buf := gopacket.NewSerializeBuffer()
		opts := gopacket.SerializeOptions{
			ComputeChecksums: true,
			FixLengths:       true,
		}

		// Alternate TCP and UDP traffic
		if i%2 == 0 {
			ipLayer := &layers.IPv4{
				SrcIP: srcIP, DstIP: dstIP,
				Version: 4, TTL: 64, Protocol: layers.IPProtocolTCP,
			}
			tcpLayer := &layers.TCP{
				SrcPort: layers.TCPPort(srcPort),
				DstPort: layers.TCPPort(dstPort),
				Seq:     rng.Uint32(),
				SYN:     true,
				Window:  14600,
			}
			tcpLayer.SetNetworkLayerForChecksum(ipLayer)
			err = gopacket.SerializeLayers(buf, opts, ethLayer, ipLayer, tcpLayer, gopacket.Payload(payload))
		} else {
			ipLayer := &layers.IPv4{
				SrcIP: srcIP, DstIP: dstIP,
				Version: 4, TTL: 64, Protocol: layers.IPProtocolUDP,
			}
			udpLayer := &layers.UDP{
				SrcPort: layers.UDPPort(srcPort),
				DstPort: layers.UDPPort(dstPort),
			}
			udpLayer.SetNetworkLayerForChecksum(ipLayer)
			err = gopacket.SerializeLayers(buf, opts, ethLayer, ipLayer, udpLayer, gopacket.Payload(payload))
		}
		if err != nil {
			log.Fatalf("Failed to serialize layers: %v", err)
		}

		ci := gopacket.CaptureInfo{
			Timestamp:     ts.Add(time.Duration(i) * time.Second),
			CaptureLength: len(buf.Bytes()),
			Length:        len(buf.Bytes()),
		}
		if err := pcapWriter.WritePacket(ci, buf.Bytes()); err != nil {
			log.Fatalf("Failed to write packet: %v", err)
		}
	}

	log.Printf("Successfully generated %d packets into %s.", *packetCount, *outputFile)
}
