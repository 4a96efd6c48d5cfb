package jss

const policyXML = `<policy>
  <general>
    <id>1</id>
    <name>Install Nethack-3.4.3</name>
    <frequency>Once per computer</frequency>
  </general>
  <scope>
    <all_computers>false</all_computers>
    <computer_groups>
      <computer_group>
        <id>5</id>
        <name>Lab Macs</name>
      </computer_group>
    </computer_groups>
    <exclusions>
      <computer_groups/>
    </exclusions>
  </scope>
  <package_configuration>
    <packages>
      <size>1</size>
      <package>
        <id>10</id>
        <name>Nethack-3.4.3.pkg</name>
        <action>Install</action>
      </package>
    </packages>
  </package_configuration>
</policy>`

const groupXML = `<computer_group>
  <id>5</id>
  <name>Lab Macs</name>
  <is_smart>false</is_smart>
  <computers>
    <size>1</size>
    <computer>
      <id>7</id>
      <name>lab-01</name>
    </computer>
  </computers>
</computer_group>`
